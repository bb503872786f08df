package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

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
	c.Logger.Info("migrations applied against %s database", cfg.Database.Driver())
}
