package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/errs"
	userPort "yatube/internal/ports/user"
)

type UserController struct {
	uc       UserUseCase
	tokenTTL time.Duration
	secure   bool
}

func NewUserController(uc UserUseCase, tokenTTL time.Duration, secure bool) *UserController {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &UserController{uc: uc, tokenTTL: tokenTTL, secure: secure}
}

func (ctl *UserController) SignupForm(c *gin.Context) {
	render(c, http.StatusOK, "signup.html", gin.H{
		"title":  "Sign up",
		"form":   map[string]string{},
		"errors": map[string]string{},
	})
}

func (ctl *UserController) Signup(c *gin.Context) {
	var in userPort.SignupInput
	if err := c.ShouldBind(&in); err != nil {
		handleError(c, err)
		return
	}
	if _, err := ctl.uc.RegisterUser(c.Request.Context(), in); err != nil {
		if fields := errs.FieldErrors(err); fields != nil {
			render(c, http.StatusOK, "signup.html", gin.H{
				"title": "Sign up",
				"form": map[string]string{
					"first_name": in.FirstName,
					"last_name":  in.LastName,
					"username":   in.Username,
					"email":      in.Email,
				},
				"errors": fields,
			})
			return
		}
		handleError(c, err)
		return
	}

	res, err := ctl.uc.LoginUser(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	ctl.setToken(c, res.Token)
	c.Redirect(http.StatusFound, "/")
}

func (ctl *UserController) LoginForm(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"title":  "Log in",
		"next":   c.Query("next"),
		"form":   map[string]string{},
		"errors": map[string]string{},
	})
}

func (ctl *UserController) Login(c *gin.Context) {
	var req struct {
		Username string `form:"username"`
		Password string `form:"password"`
		Next     string `form:"next"`
	}
	if err := c.ShouldBind(&req); err != nil {
		handleError(c, err)
		return
	}

	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if fields := errs.FieldErrors(err); fields != nil {
			render(c, http.StatusOK, "login.html", gin.H{
				"title":  "Log in",
				"next":   req.Next,
				"form":   map[string]string{"username": req.Username},
				"errors": fields,
			})
			return
		}
		handleError(c, err)
		return
	}

	ctl.setToken(c, res.Token)
	c.Redirect(http.StatusFound, safeNext(req.Next))
}

func (ctl *UserController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", ctl.secure, true)
	middleware.ForgetUser(c)
	render(c, http.StatusOK, "logged_out.html", gin.H{"title": "Logged out"})
}

func (ctl *UserController) setToken(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(ctl.tokenTTL.Seconds()), "/", "", ctl.secure, true)
}

// safeNext only follows local redirect targets.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
