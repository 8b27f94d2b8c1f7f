package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/config"
	"yatube/internal/errs"
)

// render executes a page with the actor added to its data.
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["user"] = middleware.CurrentUser(c)
	c.HTML(status, page, data)
}

func notFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", gin.H{
		"title": "Page not found",
		"path":  c.Request.URL.Path,
	})
}

func serverError(c *gin.Context) {
	render(c, http.StatusInternalServerError, "500.html", gin.H{"title": "Server error"})
}

// handleError renders the page matching an application error. Validation
// errors are handled by the form controllers themselves.
func handleError(c *gin.Context, err error) {
	switch errs.ErrorCode(err) {
	case errs.ENOTFOUND:
		notFound(c)
	case errs.EUNAUTHORIZED:
		c.Redirect(http.StatusFound, middleware.LoginURL(c.Request.URL.RequestURI()))
	default:
		config.Logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		_ = c.Error(err)
		serverError(c)
	}
}

// NotFound is the fallback for unknown routes.
func NotFound(c *gin.Context) {
	notFound(c)
}

// Recovered renders the error page after a panic.
func Recovered(c *gin.Context, recovered any) {
	config.Logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
	serverError(c)
	c.Abort()
}
