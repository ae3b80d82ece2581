package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/saulo-duarte/quizsolver/internal/config"
	"github.com/saulo-duarte/quizsolver/internal/container"
	"github.com/saulo-duarte/quizsolver/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		config.Logger.WithError(err).Error("Error loading config")
		os.Exit(1)
	}
	config.InitLogger(cfg.LogLevel, cfg.LogFormat)
	log := config.WithContext(ctx)

	c, err := container.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("Failed to initialize")
		os.Exit(1)
	}

	if c.Status != nil {
		c.Status.Start(ctx)
		log.WithField("token", c.StatusToken).Info("Status API bearer token")
	}

	kb, err := c.Runner.Run(ctx)
	if err != nil {
		log.WithError(err).Warn("Stopped before every answer was confirmed")
		os.Exit(1)
	}

	if err := report.Write(os.Stdout, kb); err != nil {
		log.WithError(err).Error("Failed to print results")
		os.Exit(1)
	}
}
