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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/config"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/detector"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
)

const shutdownTimeout = 10 * time.Second

var riskZones = []domain.RiskZone{
	{Name: "Old Market Lane", Lat: 28.4521, Lng: 77.5862, RadiusM: 150, Level: domain.RiskMedium},
	{Name: "Riverside Ghat", Lat: 28.4598, Lng: 77.5951, RadiusM: 250, Level: domain.RiskHigh},
}

func main() {
	root := &cobra.Command{
		Use:   "saarthi",
		Short: "Saarthi Suraksha tourist safety service",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the location subscriber.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), config.Load())
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			logger, err := config.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return config.Migrate(cfg, dir, logger)
		},
	}
	migrateCmd.Flags().String("dir", "", "Directory containing the migration files (defaults to MIGRATIONS_DIR)")

	root.AddCommand(serveCmd, migrateCmd)
	// bare invocation serves
	root.RunE = serveCmd.RunE

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.NewPostgres(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg, logger)
	if err != nil {
		return err
	}
	defer mqttClient.Disconnect(250)

	redisClient, err := config.NewRedis(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	coreModule, err := core.Build(core.Deps{
		DB:          db,
		AMQP:        amqpConn,
		MQTT:        mqttClient,
		Redis:       redisClient,
		Logger:      logger,
		RiskZones:   riskZones,
		SigningKey:  []byte(cfg.VCSigningSecret),
		DetectorCfg: detector.DefaultConfig(),
	})
	if err != nil {
		return fmt.Errorf("core module: %w", err)
	}

	if err := coreModule.StartSubscribers(); err != nil {
		return fmt.Errorf("start subscribers: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), config.GinLogger(logger))

	coreModule.RegisterRoutes(r)

	health := config.NewHealthChecker(db, amqpConn, mqttClient, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	health.Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
