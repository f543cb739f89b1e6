package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notemark/config"
	"notemark/handler"
	"notemark/middleware"
	"notemark/repository"
	"notemark/services"
	"notemark/usecase"
	"notemark/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

var (
	servePort    string
	skipIndexes  bool
	shutdownWait time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if servePort != "" {
			cfg.Port = servePort
		}

		logger, err := utils.NewLogger(cfg.Environment, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, logger)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVar(&skipIndexes, "skip-indexes", false, "do not create MongoDB indexes on startup")
	serveCmd.Flags().DurationVar(&shutdownWait, "shutdown-timeout", 10*time.Second, "grace period for in-flight requests")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := utils.ConnectMongo(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	logger.Info("Connected to MongoDB", zap.String("database", cfg.Database.DatabaseName))

	db := client.Database(cfg.Database.DatabaseName)
	if !skipIndexes {
		if err := repository.SetupIndexes(ctx, db, logger); err != nil {
			return err
		}
	}

	router, cleanup, err := buildRouter(ctx, cfg, client, db, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server shutdown complete")
	return nil
}

// buildRouter wires repositories, services and handlers. The returned cleanup closes
// the Redis client, when one was opened.
func buildRouter(ctx context.Context, cfg *config.Config, client *mongo.Client, db *mongo.Database, logger *zap.Logger) (*gin.Engine, func(), error) {
	tokens, err := services.NewTokenService(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, nil, err
	}

	// Left as nil interfaces when Redis is not configured.
	var (
		revocations middleware.RevocationChecker
		revoker     usecase.TokenRevoker
		cache       handler.Pinger
	)
	cleanup := func() {}

	if cfg.RedisURL != "" {
		redisClient, err := services.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		tokenRevoker := services.NewTokenRevoker(redisClient)
		revocations, revoker, cache = tokenRevoker, tokenRevoker, tokenRevoker
		cleanup = func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("Failed to close Redis client", zap.Error(err))
			}
		}
		logger.Info("Token revocation enabled")
	} else {
		logger.Warn("REDIS_URL not set; logout will not revoke tokens")
	}

	usersRepo := repository.GetUsersRepo(db)
	notesRepo := repository.GetNotesRepo(db)
	bookmarksRepo := repository.GetBookmarksRepo(db)

	fetcher := services.NewMetadataFetcher(cfg.Metadata, logger)

	router := handler.NewRouter(handler.Router{
		Config: handler.RouterConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			MaxBodyBytes:   cfg.MaxBodyBytes,
		},
		Logger:      logger,
		Tokens:      tokens,
		Revocations: revocations,
		Auth: &handler.AuthHandler{
			Users:         usecase.NewUserService(usersRepo, notesRepo, bookmarksRepo, tokens, revoker, logger),
			SecureCookies: cfg.IsProduction(),
			Logger:        logger,
		},
		Notes: &handler.NotesHandler{
			Notes:  usecase.NewNotesService(notesRepo),
			Logger: logger,
		},
		Bookmarks: &handler.BookmarksHandler{
			Bookmarks: usecase.NewBookmarksService(bookmarksRepo, fetcher, logger),
			Logger:    logger,
		},
		Health: &handler.HealthHandler{
			Database: handler.PingerFunc(func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			}),
			Cache:   cache,
			Started: time.Now(),
			Logger:  logger,
		},
	})

	return router, cleanup, nil
}
