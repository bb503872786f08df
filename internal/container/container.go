// Package container wires the application: storage, knowledge base,
// generators, scorer, and services, driven by configuration.
package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"qiming/adapters/llm"
	"qiming/adapters/postgres"
	"qiming/adapters/sqlite"
	"qiming/app"
	"qiming/internal/config"
	"qiming/internal/generator"
	"qiming/internal/knowledge"
	"qiming/internal/logging"
	"qiming/internal/migration"
	"qiming/internal/scoring"
	"qiming/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *logging.Logger

	// Infrastructure
	DB        *sqlx.DB
	Knowledge *knowledge.Base

	// Repositories (data access layer)
	NameRepo ports.NameRepository
	UserRepo ports.UserRepository

	// Services
	Naming  *app.NamingService
	History *app.HistoryService
	Auth    *app.AuthService
}

// New builds the full dependency graph for the given configuration.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: logging.NewDefaultLogger(),
	}

	kb, err := knowledge.Default()
	if err != nil {
		return nil, fmt.Errorf("loading knowledge base: %w", err)
	}
	c.Knowledge = kb

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}
	c.DB = db

	if cfg.Database.Driver() == "postgres" {
		c.NameRepo = postgres.NewNameRepository(db)
		c.UserRepo = postgres.NewUserRepository(db)
	} else {
		c.NameRepo = sqlite.NewNameRepository(db)
		c.UserRepo = sqlite.NewUserRepository(db)
	}

	scorer := scoring.NewScorer(kb)
	generators := []ports.NameGenerator{
		generator.NewPoetry(kb, nil),
		generator.NewWuxing(kb, nil),
	}
	if cfg.AI.APIKey != "" {
		client, err := llm.NewOpenAIClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model,
			cfg.AI.Temperature, cfg.AI.MaxTokens, cfg.AI.Timeout)
		if err != nil {
			return nil, fmt.Errorf("building LLM client: %w", err)
		}
		generators = append(generators, llm.NewNameGenerator(client, c.Logger))
	} else {
		c.Logger.Warn("OPENAI_API_KEY not set, the ai source is disabled")
	}

	c.Naming = app.NewNamingService(generators, scorer, c.NameRepo, c.Logger)
	c.History = app.NewHistoryService(c.NameRepo, c.Logger)
	c.Auth = app.NewAuthService(c.UserRepo, c.NameRepo, cfg.Auth.Secret, cfg.Auth.TokenTTL, c.Logger)

	return c, nil
}

func openDatabase(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.Database.Driver() == "postgres" {
		return postgres.Open(cfg.Database.URL)
	}
	return sqlite.Open(cfg.Database.Path)
}

// Migrate applies the schema migrations against the container's database.
func (c *Container) Migrate(ctx context.Context) error {
	return migration.NewRunner(c.DB, c.Config.Database.Driver(), c.Logger).Run(ctx)
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
