package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/config"
	groupapp "yatube/internal/core/group/service"
	userapp "yatube/internal/core/user/service"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "yatube",
		Short:         "Yatube blog server and admin tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newGroupCmd(), newUserCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := setup()
			if err != nil {
				return err
			}
			defer closeResources(config.Logger)
			return migrate(db)
		},
	}
}

func newGroupCmd() *cobra.Command {
	group := &cobra.Command{
		Use:   "group",
		Short: "Manage groups",
	}

	var title, slug, description string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a group; the slug is derived from the title when omitted",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := groupService()
			if err != nil {
				return err
			}
			defer closeResources(config.Logger)

			g, err := svc.CreateGroup(cmd.Context(), title, slug, description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created group %s (/group/%s/)\n", g.Title, g.Slug)
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "group title")
	create.Flags().StringVar(&slug, "slug", "", "URL slug")
	create.Flags().StringVar(&description, "description", "", "group description")
	_ = create.MarkFlagRequired("title")

	del := &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a group; its posts are kept without a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := groupService()
			if err != nil {
				return err
			}
			defer closeResources(config.Logger)

			if err := svc.DeleteGroup(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted group %s\n", args[0])
			return nil
		},
	}

	group.AddCommand(create, del)
	return group
}

func newUserCmd() *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	del := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user with their posts, comments and follows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := setup()
			if err != nil {
				return err
			}
			defer closeResources(config.Logger)
			if err := migrate(db); err != nil {
				return err
			}

			svc := userapp.NewUserService(dbadapter.NewUserRepositoryDatabase(db), []byte(s.JWTSecret), s.TokenTTL)
			if err := svc.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", args[0])
			return nil
		},
	}
	user.AddCommand(del)
	return user
}

// setup loads settings, the logger and the database.
func setup() (*config.Settings, *gorm.DB, error) {
	s, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	config.InitLogger(s.AppEnv)

	db, err := config.InitDB(s)
	if err != nil {
		return nil, nil, err
	}
	return s, db, nil
}

func migrate(db *gorm.DB) error {
	if err := dbadapter.AutoMigrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	config.Logger.Info("✅ Database migrations completed")
	return nil
}

func groupService() (*groupapp.GroupService, error) {
	_, db, err := setup()
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return groupapp.NewGroupService(dbadapter.NewGroupRepositoryDatabase(db)), nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// closeResources closes the redis and database connections.
func closeResources(logger *zap.Logger) {
	if err := config.CloseRedis(); err != nil {
		logger.Error("Error closing Redis connection:", zap.Error(err))
	}
	if err := config.CloseDB(); err != nil {
		logger.Error("Error closing database connection:", zap.Error(err))
	}
}
