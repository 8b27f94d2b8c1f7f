package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/config"
	cachePort "yatube/internal/ports/cache"
	commentPort "yatube/internal/ports/comment"
	feedPort "yatube/internal/ports/feed"
	followerPort "yatube/internal/ports/follower"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

// UserUseCase is the inbound port for accounts.
type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, in userPort.SignupInput) (*userPort.UserDTO, error)
	Authenticate(ctx context.Context, token string) (*userPort.UserDTO, error)
}

type GroupUseCase interface {
	ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, actor *userPort.UserDTO, in postPort.PostInput) (*postPort.PostDTO, error)
	EditPost(ctx context.Context, actor *userPort.UserDTO, username string, id uint, in postPort.PostInput) (*postPort.PostDTO, error)
	GetPost(ctx context.Context, username string, id uint) (*postPort.PostDTO, error)
	CountByAuthor(ctx context.Context, author *userPort.UserDTO) (int64, error)
}

type CommentUseCase interface {
	AddComment(ctx context.Context, actor *userPort.UserDTO, username string, postID uint, in commentPort.CommentInput) (*commentPort.CommentDTO, error)
	ListComments(ctx context.Context, postID uint) ([]*commentPort.CommentDTO, error)
}

type FollowerUseCase interface {
	FollowUser(ctx context.Context, viewer *userPort.UserDTO, username string) error
	UnfollowUser(ctx context.Context, viewer *userPort.UserDTO, username string) error
	IsFollowing(ctx context.Context, viewer, author *userPort.UserDTO) (bool, error)
	Stats(ctx context.Context, author *userPort.UserDTO) (*followerPort.FollowStatsDTO, error)
}

type FeedUseCase interface {
	Index(ctx context.Context, page string) (*postPort.FeedPage, error)
	Group(ctx context.Context, slug, page string) (*feedPort.GroupFeedDTO, error)
	Profile(ctx context.Context, viewer *userPort.UserDTO, username, page string) (*feedPort.ProfileDTO, error)
	Follow(ctx context.Context, viewer *userPort.UserDTO, page string) (*postPort.FeedPage, error)
}

// UseCases are injected from outside; the router only wires them to routes.
type UseCases struct {
	User     UserUseCase
	Group    GroupUseCase
	Post     PostUseCase
	Comment  CommentUseCase
	Follower FollowerUseCase
	Feed     FeedUseCase
}

type Options struct {
	PageCache     cachePort.PageCache
	IndexCacheTTL time.Duration
	MediaRoot     string
	TokenTTL      time.Duration
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
	MaxUploadSize int64
}

func SetupRoutes(uc UseCases, opts Options) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	r := gin.New()
	r.Use(middleware.ZapLogger(config.Logger), gin.CustomRecovery(Recovered))
	r.SetHTMLTemplate(tmpl)
	if opts.MaxUploadSize > 0 {
		r.MaxMultipartMemory = opts.MaxUploadSize
	}

	fc := NewFeedController(uc.Feed)
	pc := NewPostController(uc.Post, uc.Comment, uc.Follower, uc.Group)
	flc := NewFollowerController(uc.Follower)
	usc := NewUserController(uc.User, opts.TokenTTL, opts.SecureCookies)

	r.NoRoute(middleware.Authenticate(uc.User), NotFound)
	if opts.MediaRoot != "" {
		r.Static("/media", opts.MediaRoot)
	}

	site := r.Group("/", middleware.Authenticate(uc.User))
	login := middleware.LoginRequired()

	index := []gin.HandlerFunc{fc.Index}
	if opts.PageCache != nil {
		index = append([]gin.HandlerFunc{middleware.CachePage(opts.PageCache, opts.IndexCacheTTL)}, index...)
	}
	site.GET("/", index...)
	site.GET("/group/:slug/", fc.Group)
	site.GET("/follow/", login, fc.Follow)
	site.GET("/new/", login, pc.NewPostForm)
	site.POST("/new/", login, pc.NewPost)

	site.GET("/about/author/", AboutAuthor)
	site.GET("/about/tech/", AboutTech)

	site.GET("/auth/signup/", usc.SignupForm)
	site.POST("/auth/signup/", usc.Signup)
	site.GET("/auth/login/", usc.LoginForm)
	site.POST("/auth/login/", usc.Login)
	site.GET("/auth/logout/", usc.Logout)

	site.GET("/:username/", fc.Profile)
	site.GET("/:username/follow/", login, flc.ProfileFollow)
	site.GET("/:username/unfollow/", login, flc.ProfileUnfollow)
	site.GET("/:username/:post_id/", pc.PostView)
	site.GET("/:username/:post_id/edit/", login, middleware.OnlyAuthor(), pc.EditPostForm)
	site.POST("/:username/:post_id/edit/", login, middleware.OnlyAuthor(), pc.EditPost)
	site.GET("/:username/:post_id/comment/", pc.CommentRedirect)
	site.POST("/:username/:post_id/comment/", login, pc.AddComment)

	return r, nil
}
