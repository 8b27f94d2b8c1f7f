package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func AboutAuthor(c *gin.Context) {
	render(c, http.StatusOK, "author.html", gin.H{"title": "About the author"})
}

func AboutTech(c *gin.Context) {
	render(c, http.StatusOK, "tech.html", gin.H{"title": "Technologies"})
}
