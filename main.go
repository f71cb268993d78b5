// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/medical-forum/config"
	"github.com/ariebrainware/medical-forum/endpoint"
	"github.com/ariebrainware/medical-forum/model"
	"github.com/ariebrainware/medical-forum/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("medical-forum: %v", err)
	}
}

func run(ctx context.Context) error {
	// Load the configuration
	cfg := config.LoadConfig()

	logger, err := util.InitLogger(cfg.AppEnv)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.ConnectDatabase()
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	engine := model.NewEngineFromDB(db)
	defer func() { _ = engine.Close() }()
	if err := engine.CreateTables(); err != nil {
		return err
	}

	if _, err := config.ConnectRedis(); err != nil {
		logger.Warn("rate limiting disabled", zap.Error(err))
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)
	router := endpoint.NewRouter(db, cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
