package main

import (
	"flag"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pluggbulle/internal/app"
	"github.com/shrimpsizemoose/pluggbulle/internal/bot"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	cfg, err := bot.ReadConfig(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to read config: %v", err)
	}

	store, err := app.NewStore(cfg.Database.DSN, cfg.Database.MigrationsDir)
	if err != nil {
		logger.Error.Fatalf("Failed to create store: %v", err)
	}

	tokens, err := app.NewTokenManagerFromConfig(cfg)
	if err != nil {
		logger.Error.Fatalf("Failed to connect token storage: %v", err)
	}
	defer tokens.Close()

	service := app.NewServiceWith(cfg, store, nil, nil)
	defer service.Close()

	b, err := bot.New(service, tokens)
	if err != nil {
		logger.Error.Fatalf("Failed to create bot: %v", err)
	}

	logger.Info.Println("Bot intialized succesfully")
	if err := b.Start(); err != nil {
		logger.Error.Fatalf("Bot error: %v", err)
	}
}
