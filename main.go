package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"patientid/cmd"
	"patientid/internal/config"
	"patientid/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.Load(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		log.Printf("Warning: Could not load configuration: %v", err)
		cfg = config.Default()
	}
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mainLog := logger.WithComponent("main")
	mainLog.Debug().Msg("Starting patientid")

	if err := cmd.Execute(ctx, cfg); err != nil {
		mainLog.Debug().Err(err).Msg("Command execution failed")
		stop()
		os.Exit(1)
	}
}
