package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"qiming/adapters/api"
	"qiming/internal/config"
	"qiming/internal/container"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("building application: %v", err)
	}
	defer c.Close()

	if err := c.Migrate(context.Background()); err != nil {
		log.Fatalf("applying migrations: %v", err)
	}

	server := api.NewServer(c.Naming, c.History, c.Auth, cfg.Server.GinMode, c.Logger)
	c.Logger.Info("listening on :%s (database driver %s)", cfg.Server.Port, cfg.Database.Driver())
	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
