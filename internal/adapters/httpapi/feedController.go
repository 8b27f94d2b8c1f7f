package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
)

type FeedController struct{ fc FeedUseCase }

func NewFeedController(fc FeedUseCase) *FeedController { return &FeedController{fc: fc} }

func (ctl *FeedController) Index(c *gin.Context) {
	feed, err := ctl.fc.Index(c.Request.Context(), c.Query("page"))
	if err != nil {
		handleError(c, err)
		return
	}
	render(c, http.StatusOK, "index.html", gin.H{
		"title": "Latest posts",
		"posts": feed.Posts,
		"page":  feed.Page,
	})
}

func (ctl *FeedController) Group(c *gin.Context) {
	res, err := ctl.fc.Group(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		handleError(c, err)
		return
	}
	render(c, http.StatusOK, "group.html", gin.H{
		"title": res.Group.Title,
		"group": res.Group,
		"posts": res.Feed.Posts,
		"page":  res.Feed.Page,
	})
}

func (ctl *FeedController) Profile(c *gin.Context) {
	res, err := ctl.fc.Profile(c.Request.Context(), middleware.CurrentUser(c), c.Param("username"), c.Query("page"))
	if err != nil {
		handleError(c, err)
		return
	}
	render(c, http.StatusOK, "profile.html", gin.H{
		"title":     res.Author.Username,
		"author":    res.Author,
		"posts":     res.Feed.Posts,
		"page":      res.Feed.Page,
		"count":     res.Feed.Page.Total,
		"following": res.Following,
		"stats":     res.Stats,
	})
}

func (ctl *FeedController) Follow(c *gin.Context) {
	feed, err := ctl.fc.Follow(c.Request.Context(), middleware.CurrentUser(c), c.Query("page"))
	if err != nil {
		handleError(c, err)
		return
	}
	render(c, http.StatusOK, "follow.html", gin.H{
		"title": "Following",
		"posts": feed.Posts,
		"page":  feed.Page,
	})
}
