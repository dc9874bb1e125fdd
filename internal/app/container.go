package app

import (
	"context"
	"log"
	"time"

	"github.com/sebastupa/testAssist/internal/config"
	"github.com/sebastupa/testAssist/internal/database"
	dbpostgres "github.com/sebastupa/testAssist/internal/database/postgres"
	"github.com/sebastupa/testAssist/internal/infrastructure/cache"
	"github.com/sebastupa/testAssist/internal/ws"
)

// Container owns every process-wide dependency; nothing hangs off package
// globals. Lifecycle is tied to process start/stop via Close.
type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Hub:    hub,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
