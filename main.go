package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"booking-server/internal/config"
	"booking-server/internal/jobs"
	"booking-server/internal/logger"
	"booking-server/internal/mail"
	"booking-server/internal/middleware"
	"booking-server/internal/models"
	"booking-server/internal/queue"
	"booking-server/internal/routes"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "booking-server",
		Short:        "Appointment booking API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(workerCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func workerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Process background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			drain, _ := cmd.Flags().GetBool("drain")
			return runWorker(drain)
		},
	}
	cmd.Flags().Bool("drain", false, "Process queued jobs and exit")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			if err := models.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info().Str("dialect", cfg.Database.Dialect).Msg("migrations applied")
			return nil
		},
	}
}

// bootstrap loads .env and config and builds the logger.
func bootstrap() (*config.Config, zerolog.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file loaded")
	}
	models.SetFilesBaseURL(cfg.FilesURL())
	return cfg, log, nil
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := models.InitDB(models.DatabaseConfig{
		Dialect: cfg.Database.Dialect,
		DSN:     cfg.Database.DSN,
		Debug:   cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

func openRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return rdb, nil
}

func runServer() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	log.Info().Str("dialect", cfg.Database.Dialect).Msg("connected to database")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := openRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.Cleanup(ctx)

	routes.SetupRoutes(router, routes.Deps{
		DB:         db,
		Cfg:        cfg,
		Dispatcher: queue.New(rdb, cfg.Redis.QueuePrefix),
		Limiter:    limiter,
		Log:        log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func runWorker(drain bool) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := openRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	sender := mail.NewSMTPSender(cfg.Mailer.Host, cfg.Mailer.Port, cfg.Mailer.DefaultFrom)
	cancellation := jobs.NewCancellationMail(sender, log)

	q := queue.New(rdb, cfg.Redis.QueuePrefix)
	worker := queue.NewWorker(q, log, queue.WorkerConfig{})
	worker.Register(cancellation.Key(), cancellation)

	if drain {
		n, err := worker.Drain(ctx)
		if err != nil {
			return err
		}
		parked, err := q.Failed(ctx, cancellation.Key())
		if err != nil {
			return err
		}
		log.Info().Int("processed", n).Int("failed_total", len(parked)).Msg("queue drained")
		return nil
	}

	if pending, err := q.Len(ctx, cancellation.Key()); err == nil {
		log.Info().Int64("pending", pending).Str("kind", cancellation.Key()).Msg("queue backlog")
	}
	return worker.Run(ctx)
}
