package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/config"
	"yatube/internal/core/access"
	"yatube/internal/errs"
	userPort "yatube/internal/ports/user"
)

const (
	// TokenCookie carries the session token.
	TokenCookie = "token"
	// LoginPath is where anonymous visitors of gated pages are sent.
	LoginPath = "/auth/login/"

	userKey = "user"
)

// Authenticator resolves the user a token was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*userPort.UserDTO, error)
}

// Authenticate puts the actor of the request into the context. Requests
// without a valid token continue as anonymous.
func Authenticate(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}
		user, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errs.ErrorCode(err) != errs.EUNAUTHORIZED {
				config.Logger.Error("could not authenticate request", zap.Error(err))
			}
			c.Next()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(TokenCookie); err == nil && token != "" {
		return token
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// CurrentUser returns the actor, nil for anonymous requests.
func CurrentUser(c *gin.Context) *userPort.UserDTO {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*userPort.UserDTO)
	return user
}

// ForgetUser makes the rest of the request anonymous.
func ForgetUser(c *gin.Context) {
	c.Set(userKey, (*userPort.UserDTO)(nil))
}

// LoginRequired sends anonymous visitors to the login page, remembering
// where they were going.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginURL is the login page that returns to next afterwards.
func LoginURL(next string) string {
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// OnlyAuthor lets through the user named in the route and redirects
// everyone else to the post detail page.
func OnlyAuthor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
		if err != nil {
			c.Next()
			return
		}
		decision := access.OnlyAuthor(CurrentUser(c), access.PostRef{
			Username: c.Param("username"),
			PostID:   uint(id),
		})
		if !decision.Allowed {
			c.Redirect(http.StatusFound, decision.RedirectTo)
			c.Abort()
			return
		}
		c.Next()
	}
}
