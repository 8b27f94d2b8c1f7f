package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/errs"
)

type FollowerController struct{ fc FollowerUseCase }

func NewFollowerController(fc FollowerUseCase) *FollowerController {
	return &FollowerController{fc: fc}
}

// ProfileFollow follows the author and returns to their profile. Trying to
// follow yourself lands on your own profile with nothing stored.
func (ctl *FollowerController) ProfileFollow(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	username := c.Param("username")

	err := ctl.fc.FollowUser(c.Request.Context(), viewer, username)
	if errs.ErrorCode(err) == errs.EINVALID {
		c.Redirect(http.StatusFound, "/"+viewer.Username+"/")
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+username+"/")
}

// ProfileUnfollow removes the follow edge; a missing edge is a 404.
func (ctl *FollowerController) ProfileUnfollow(c *gin.Context) {
	username := c.Param("username")
	if err := ctl.fc.UnfollowUser(c.Request.Context(), middleware.CurrentUser(c), username); err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+username+"/")
}
