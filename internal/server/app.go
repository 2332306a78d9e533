// Package server wires storage, the presence router and the HTTP surface
// together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/outfitai/outfitai/internal/logging"
	"github.com/outfitai/outfitai/internal/server/auth"
	"github.com/outfitai/outfitai/internal/server/completion"
	"github.com/outfitai/outfitai/internal/server/config"
	"github.com/outfitai/outfitai/internal/server/httpapi"
	"github.com/outfitai/outfitai/internal/server/metrics"
	"github.com/outfitai/outfitai/internal/server/presence"
	"github.com/outfitai/outfitai/internal/server/realtime"
	"github.com/outfitai/outfitai/internal/server/repositories/repomanager"
	"github.com/outfitai/outfitai/internal/server/services"
	"github.com/outfitai/outfitai/internal/server/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 15 * time.Second

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type httpServer interface {
	Serve(ctx context.Context, ln net.Listener) error
	Shutdown(ctx context.Context) error
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	presence *presence.Router
	http     httpServer
	listener net.Listener
}

// NewApp connects to Postgres, applies migrations, builds every service and
// binds the listen address.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogFormat, os.Stdout)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	blobs, err := storage.NewS3Store(ctx, storage.Settings{
		AccessKey: c.S3RootUser,
		SecretKey: c.S3RootPassword,
		Bucket:    c.S3Bucket,
		Region:    c.S3Region,
		Endpoint:  c.S3BaseEndpoint,
		PublicURL: c.S3PublicURL,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	completer, err := completion.New(ctx, c.AIAPIKey, c.AIModel)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("completion init error: %w", err)
	}
	if _, disabled := completer.(completion.Disabled); disabled {
		logger.Warn(ctx, "AI API key not set, outfit suggestions are disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	messages := services.NewMessageService(db, rm)
	router := presence.NewRouter(messages, logger, m)

	share, err := services.NewShareService(db, rm, c.PublicBaseURL)
	if err != nil {
		db.Close()
		return nil, err
	}

	srv := httpapi.NewHTTPServer(c.EndpointAddrHTTP, httpapi.Deps{
		Users:          services.NewUserService(db, rm, c),
		Wardrobe:       services.NewWardrobeService(db, rm, blobs, logger),
		Outfits:        services.NewOutfitService(db, rm, completer, logger),
		Listings:       services.NewListingService(db, rm, blobs, logger),
		Messages:       messages,
		Presence:       router,
		Share:          share,
		Gate:           auth.NewGate([]byte(c.SecretKey), logger, m),
		Realtime:       realtime.NewHandler(router, c.AllowedOrigins, logger, m),
		AllowedOrigins: c.AllowedOrigins,
		Production:     c.Production,
		Logger:         logger,
		Metrics:        m,
		Gatherer:       reg,
	})

	ln, err := net.Listen("tcp", c.EndpointAddrHTTP)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("listen %s: %w", c.EndpointAddrHTTP, err)
	}

	return &App{config: c, logger: logger, db: db, presence: router, http: srv, listener: ln}, nil
}

// Run serves until SIGINT/SIGTERM and returns the process exit code.
func (app *App) Run(ctx context.Context) int {
	app.logger.Info(ctx, "Starting app...")

	go func() {
		if err := app.http.Serve(ctx, app.listener); err != nil {
			app.logger.Error(ctx, "http server failed", "error", err)
			p, _ := os.FindProcess(os.Getpid())
			_ = p.Signal(os.Interrupt)
		}
	}()

	wait := gfshutdown.GracefulShutdown(ctx, shutdownTimeout, map[string]gfshutdown.Operation{
		"app": app.shutdown,
	})
	return <-wait
}

// shutdown drops live sockets first so Shutdown does not wait on them,
// then drains HTTP and closes the database.
func (app *App) shutdown(ctx context.Context) error {
	app.logger.Info(ctx, "Shutting down...")

	app.presence.CloseAll()

	if err := app.http.Shutdown(ctx); err != nil {
		app.logger.Error(ctx, "http shutdown", "error", err)
	}

	if err := app.db.Close(); err != nil {
		return fmt.Errorf("db close: %w", err)
	}
	return nil
}
