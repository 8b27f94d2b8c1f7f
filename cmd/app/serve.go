package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/adapters/httpapi"
	redisadapter "yatube/internal/adapters/redis"
	storageadapter "yatube/internal/adapters/storage"
	"yatube/internal/config"
	commentapp "yatube/internal/core/comment/service"
	feedapp "yatube/internal/core/feed/service"
	followerapp "yatube/internal/core/follower/service"
	groupapp "yatube/internal/core/group/service"
	postapp "yatube/internal/core/post/service"
	userapp "yatube/internal/core/user/service"
)

func runServe(parent context.Context) error {
	ctx, stop := signalContext(parent)
	defer stop()

	s, db, err := setup()
	if err != nil {
		return err
	}
	defer closeResources(config.Logger)

	if err := migrate(db); err != nil {
		return err
	}

	redisClient, err := config.InitRedis(ctx, s)
	if err != nil {
		return err
	}
	if !s.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	groupRepo := dbadapter.NewGroupRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(db)
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(db)
	pageCache := redisadapter.NewPageCacheRedis(redisClient)
	images := storageadapter.NewImageStorageDisk(s.MediaRoot, s.MaxUploadSize)

	r, err := httpapi.SetupRoutes(httpapi.UseCases{
		User:     userapp.NewUserService(userRepo, []byte(s.JWTSecret), s.TokenTTL),
		Group:    groupapp.NewGroupService(groupRepo),
		Post:     postapp.NewPostService(postRepo, groupRepo, images),
		Comment:  commentapp.NewCommentService(commentRepo, postRepo),
		Follower: followerapp.NewFollowerService(followerRepo, userRepo),
		Feed:     feedapp.NewFeedService(postRepo, groupRepo, userRepo, followerRepo),
	}, httpapi.Options{
		PageCache:     pageCache,
		IndexCacheTTL: s.IndexCacheTTL,
		MediaRoot:     s.MediaRoot,
		TokenTTL:      s.TokenTTL,
		SecureCookies: !s.IsDev(),
		MaxUploadSize: s.MaxUploadSize,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + s.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		config.Logger.Info("App is running...", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		config.Logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
