package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgball2608/insta-persona/internal/app"
	"github.com/orgball2608/insta-persona/pkg/logger"
	"go.uber.org/fx"
)

const serviceName = "insta-persona"

func main() {
	log := logger.New(logger.Opts{})

	fxApp := fx.New(
		fx.Logger(log),
		app.Module,
	)

	log.Info("Starting service", "service", serviceName)
	if err := fxApp.Start(context.Background()); err != nil {
		log.Error("Failed to start application", "service", serviceName, "error", err)
		os.Exit(1)
	}

	// Block until an interrupt asks us to go away.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal, shutting down", "service", serviceName, "signal", sig.String())

	if err := fxApp.Stop(context.Background()); err != nil {
		log.Error("Failed to stop application", "service", serviceName, "error", err)
		os.Exit(1)
	}
}
