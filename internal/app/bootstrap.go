package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/sebastupa/testAssist/internal/config"
	"github.com/sebastupa/testAssist/internal/database/migration"
	"github.com/sebastupa/testAssist/internal/delivery/http/handler"
	"github.com/sebastupa/testAssist/internal/delivery/http/middleware"
	"github.com/sebastupa/testAssist/internal/delivery/http/routes"
	"github.com/sebastupa/testAssist/internal/infrastructure/cache"
	"github.com/sebastupa/testAssist/internal/pkg/jwt"
	"github.com/sebastupa/testAssist/internal/repository"
	ucauth "github.com/sebastupa/testAssist/internal/usecase/auth"
	ucjob "github.com/sebastupa/testAssist/internal/usecase/job"
	ucpref "github.com/sebastupa/testAssist/internal/usecase/preference"
	"github.com/sebastupa/testAssist/internal/ws"
	"github.com/sebastupa/testAssist/migrations"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the dependency graph, applies pending schema migrations,
// and returns the app ready to listen. The returned cleanup releases the
// container.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	migCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := (migration.Runner{FS: migrations.Files}).Run(migCtx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	errMw := middleware.NewErrorMiddleware(c.Logger)
	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(c.DB)
	prefRepo := repository.NewPostgresPreferenceRepository(c.DB)
	jobRepo := repository.NewPostgresJobRepository(c.DB)

	limiter := cache.NewResetLimiter(c.Cache, cfg.RateLimit.ResetMaxAttempts, cfg.RateLimit.ResetWindow)
	notifier := ws.NewNotifier(c.Hub)

	authUC := ucauth.NewService(userRepo, jwtSvc, limiter)
	prefUC := ucpref.NewService(prefRepo)
	jobUC := ucjob.NewService(jobRepo, userRepo, c.Cache, notifier)

	routes.Register(f, routes.Deps{
		Health:      handler.NewHealthHandler(),
		Auth:        handler.NewAuthHandler(authUC),
		Preferences: handler.NewPreferenceHandler(prefUC),
		Jobs:        handler.NewJobHandler(jobUC),
		AuthMw:      authMw,
		WS:          ws.NewHandler(c.Hub, c.Logger),
	})

	return &App{Fiber: f, Container: c}, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
