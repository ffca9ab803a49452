package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"github.com/saulo-duarte/coach-lambda/internal/config"
	"github.com/saulo-duarte/coach-lambda/internal/container"
)

// @title        Goal Coach API
// @version      1.0
// @description  Goal coaching backend: coach chat, goals, time-budgeted task generation, reflections and statistics.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	config.Init()
	log := config.Logger

	cfg, err := config.LoadAppConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	c, err := container.New(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	r := c.Router()

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		log.Info("Starting in Lambda mode")
		adapter := chiadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("port", cfg.Port).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
