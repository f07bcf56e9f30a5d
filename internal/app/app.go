package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/swaggo/swag"

	"github.com/daniilsolovey/blog-portal/config"
	"github.com/daniilsolovey/blog-portal/internal/auth"
	"github.com/daniilsolovey/blog-portal/internal/blog"
	"github.com/daniilsolovey/blog-portal/internal/db"
	"github.com/daniilsolovey/blog-portal/internal/delivery"
	"github.com/daniilsolovey/blog-portal/internal/identity"
	"github.com/daniilsolovey/blog-portal/internal/metrics"
	"github.com/daniilsolovey/blog-portal/internal/middleware"
	"github.com/daniilsolovey/blog-portal/internal/rest"
	"github.com/daniilsolovey/blog-portal/internal/rpc"
)

type App struct {
	DB     *db.Repository
	Logger *slog.Logger
	Echo   *echo.Echo
	Config *config.Config

	limiter *middleware.RateLimiter
}

// New wires the services and the HTTP surfaces. rdb may be nil, revoked sessions are
// then kept in memory.
func New(cfg *config.Config, dbConnect *pg.DB, rdb redis.UniversalClient, logger *slog.Logger) (*App, error) {
	if err := auth.CheckSecret(cfg.Auth.JWTSecret); err != nil {
		return nil, fmt.Errorf("auth config: %w", err)
	}

	dbConnect.AddQueryHook(db.NewQueryHook(logger, cfg.DB.LogQueries))
	database := db.New(dbConnect)

	store := identity.New(database, identity.DefaultPasswordPolicy, cfg.Auth.BcryptCost)
	services := NewServices(database, store)

	var revocations auth.Revocations = auth.NewMemoryRevocations()
	if rdb != nil {
		revocations = auth.NewRedisRevocations(rdb)
	}
	sessions := auth.NewSessions(auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), revocations, logger, cfg.Auth.CookieSecure)

	renderer, err := delivery.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	api := rest.NewHandler(services, sessions, logger)
	web := delivery.NewHandler(services, sessions, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = web.HTTPErrorHandler(e.DefaultHTTPErrorHandler)
	// forwarding headers are client controlled; clients are identified by the peer address
	e.IPExtractor = echo.ExtractIPDirect()

	e.Use(echomw.Recover())
	e.Use(metrics.Middleware())
	e.Use(middleware.Logging(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  []string{"*"},
		ExposeHeaders: []string{"X-Total-Count", echo.HeaderLocation},
	}))
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.PerMinute > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.PerMinute)
		e.Use(limiter.Middleware(nil))
	}
	e.Use(sessions.Middleware())

	e.GET("/health", api.Health)
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/doc.json", swaggerDoc)
	e.Any("/rpc/", echo.WrapHandler(rpc.New(logger, services.Posts, services.Tags)))

	api.RegisterRoutes(e.Group("/api"))
	web.RegisterRoutes(e.Group("", echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup:    "form:" + delivery.CSRFField,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.Auth.CookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	})))

	return &App{
		DB:     database,
		Logger: logger,
		Echo:   e,
		Config: cfg,

		limiter: limiter,
	}, nil
}

// NewServices builds the application services on top of the repository.
func NewServices(database *db.Repository, store blog.Identity) blog.Services {
	return blog.Services{
		Posts:    blog.NewPostManager(database),
		Tags:     blog.NewTagManager(database),
		Comments: blog.NewCommentManager(database),
		Roles:    blog.NewRoleManager(store),
		Users:    blog.NewUserManager(store),
	}
}

func (a *App) Run(ctx context.Context, port int) error {
	if a.limiter != nil {
		sweepCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go a.limiter.Run(sweepCtx, time.Minute)
	}

	addr := fmt.Sprintf(":%d", port)
	return a.Echo.Start(addr)
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func swaggerDoc(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(doc))
}
