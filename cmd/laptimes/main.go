package main

import (
	"context"
	"os"

	"github.com/spf13/pflag"

	"github.com/Temutjin2k/kart-laptimes/config"
	"github.com/Temutjin2k/kart-laptimes/internal/app"
	"github.com/Temutjin2k/kart-laptimes/pkg/logger"
)

var (
	helpFlag   = pflag.Bool("help", false, "Show help message")
	configPath = pflag.String("config-path", "config.yaml", "Path to the config yaml file")
)

func main() {
	pflag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return
	}

	ctx := context.Background()
	log := logger.InitLogger("", logger.LevelDebug)

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		os.Exit(1)
	}

	// Printing configuration
	config.PrintConfig(cfg)

	log = logger.InitLogger(cfg.App.Name, cfg.App.LogLevel)

	// Creating application
	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	// Running the application
	if err = application.Run(ctx); err != nil {
		log.Error(ctx, "failed to run application", err)
		os.Exit(1)
	}
}
