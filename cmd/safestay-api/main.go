package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/YOUBAZ/SafeStay/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/schema"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *AppConfig
	bunDB  *bun.DB
	repo   auth.RepositoryManager
	auther *auth.Auther
	srv    router.Server[*fiber.App]
	logger *glog.BaseLogger
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("safestay"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := LoadConfig()
	if err != nil {
		lgr.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	fmt.Println("============")
	fmt.Println(print.MaybeHighlightJSON(map[string]any{
		"port":     cfg.Port,
		"env":      cfg.Env,
		"database": cfg.DatabaseURL,
		"cors":     cfg.CORSOrigin,
	}))
	fmt.Println("============")

	app := &App{
		config: cfg,
		logger: lgr,
	}

	ctx := context.Background()

	if err := WithPersistence(ctx, app); err != nil {
		lgr.Error("persistence setup failed", "error", err)
		os.Exit(1)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		lgr.Error("http server setup failed", "error", err)
		os.Exit(1)
	}

	if err := WithAuth(ctx, app); err != nil {
		lgr.Error("auth setup failed", "error", err)
		os.Exit(1)
	}

	lgr.Info("SafeStay API listening", "port", cfg.Port, "env", cfg.Env)

	app.srv.Serve(":" + cfg.Port)

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	dsn := app.config.DatabaseURL

	var db *sql.DB
	var dialect schema.Dialect
	var err error

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err = sql.Open("pgx", dsn)
		dialect = pgdialect.New()
	} else {
		db, err = sql.Open(sqliteshim.ShimName, dsn)
		dialect = sqlitedialect.New()
	}
	if err != nil {
		return err
	}

	persistence.RegisterModel((*auth.User)(nil))

	client, err := persistence.New(app.config.GetPersistence(), db, dialect)
	if err != nil {
		return err
	}

	client.SetLogger(app.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(auth.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}
	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)
	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	if app.config.SeedFixtures {
		client.RegisterFixtures(auth.GetFixturesFS()).AddOptions(persistence.WithTrucateTables())
		if err := client.Seed(ctx); err != nil {
			return err
		}
	}

	app.bunDB = client.DB()
	app.repo = auth.NewRepositoryManager(client.DB())

	return app.repo.Validate()
}

func WithHTTPServer(ctx context.Context, app *App) error {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		a = router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName:       "safestay-api",
			UnescapePath:  true,
			StrictRouting: false,
		}))

		a.Use(recover.New())
		a.Use(helmet.New())
		a.Use(cors.New(cors.Config{
			AllowOrigins: app.config.CORSOrigin,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))

		return a
	})

	srv.Router().WithLogger(app.GetLogger("router"))

	app.srv = srv

	return nil
}

// userStoreAdapter narrows the users repository to the provider interface.
type userStoreAdapter struct {
	users auth.Users
}

func (a userStoreAdapter) GetByEmailOrPhone(ctx context.Context, identifier string) (*auth.User, error) {
	return a.users.GetByEmailOrPhone(ctx, identifier)
}

func (a userStoreAdapter) GetByID(ctx context.Context, id string) (*auth.User, error) {
	return a.users.GetByID(ctx, id)
}

func (a userStoreAdapter) TrackAttemptedLogin(ctx context.Context, user *auth.User) error {
	return a.users.TrackAttemptedLogin(ctx, user)
}

func (a userStoreAdapter) TrackSuccessfulLogin(ctx context.Context, user *auth.User) error {
	return a.users.TrackSuccessfulLogin(ctx, user)
}

func WithAuth(ctx context.Context, app *App) error {
	authCfg, err := app.config.GetAuth()
	if err != nil {
		return err
	}

	tokenService, err := auth.NewTokenService(authCfg, auth.WithTokenLogger(app.GetLogger("auth:tokens")))
	if err != nil {
		return err
	}

	provider := auth.NewUserProvider(userStoreAdapter{users: app.repo.Users()}).
		WithLogger(app.GetLogger("auth:prv"))

	auditLogger := app.GetLogger("auth:audit")
	auther := auth.NewAuthenticator(provider, app.repo, tokenService).
		WithLogger(app.GetLogger("auth:authn")).
		WithActivitySink(auth.ActivitySinkFunc(func(ctx context.Context, event auth.ActivityEvent) error {
			auditLogger.Info("activity",
				"event", string(event.EventType),
				"user_id", event.UserID,
				"actor", event.Actor.ID,
			)
			return nil
		}))

	app.auther = auther

	protected := auth.ProtectedRoute(authCfg, tokenService)

	api := app.srv.Router().Group("/api")

	auth.RegisterAuthRoutes(api.Group("/auth"), func(ac *auth.AuthController) *auth.AuthController {
		ac.Debug = app.config.Env != "production"
		ac.Auther = auther
		ac.Repo = app.repo
		ac.Protected = protected
		ac.Logger = app.GetLogger("auth:ctrl")
		return ac
	})

	RegisterAppRoutes(app, authCfg, protected)

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
