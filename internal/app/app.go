package app

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/jkosta95/recipe-app-api/api"
	"github.com/jkosta95/recipe-app-api/internal/config"
	"github.com/jkosta95/recipe-app-api/internal/handlers"
	"github.com/jkosta95/recipe-app-api/internal/monitor"
	"github.com/jkosta95/recipe-app-api/internal/readiness"
	"github.com/jkosta95/recipe-app-api/internal/storage"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type App struct {
	cfg     config.Config
	mux     *http.ServeMux
	storage storage.RecipeStorage
	monitor *monitor.Monitor
}

func InitApp(cfg config.Config) *App {
	//* storage
	redisStorage := storage.NewRedisStorage(&cfg.Redis)

	//* health
	mntr := monitor.NewMonitor(redisStorage, cfg.Health.Interval)

	//* transport
	h := handlers.NewHTTPHandler(redisStorage, mntr, cfg.Server.ResponseTimeout)
	mux := http.NewServeMux()

	api.RegisterRoutes(mux, h)

	//* app
	return &App{
		cfg:     cfg,
		mux:     mux,
		storage: redisStorage,
		monitor: mntr,
	}
}

func (a *App) Handler() http.Handler {
	return a.mux
}

// WaitForDB blocks until the database answers, following the configured
// wait policy. Progress lines are written to out.
func (a *App) WaitForDB(ctx context.Context, out io.Writer) error {
	gate := readiness.New(a.storage, a.cfg.Wait.Policy(), readiness.WithOutput(out))
	return gate.Run(ctx)
}

// Run serves HTTP until ctx is done, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           a.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go a.monitor.Run()
	defer a.monitor.Stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("recipe API listening on %s", a.cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Close() error {
	return a.storage.Close()
}
