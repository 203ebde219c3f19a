package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type App struct {
	logger *logrus.Logger
	config *config.Config
	router *http.ServeMux
	store  *session.Store
}

func New(logger *logrus.Logger, cfg *config.Config) *App {
	mines.Log = logger

	app := &App{
		logger: logger,
		config: cfg,
		router: http.NewServeMux(),
		store:  session.NewStore(logger, mines.NewRand()),
	}
	app.loadRoutes()

	return app
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Recover(a.logger),
		middleware.Logging(a.logger),
		middleware.RequestID(),
		middleware.Cors(a.config.AllowedOrigins),
	)
}

// Start serves until ctx is done, then shuts the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Infof("ready to serve @ %s", a.config.Addr)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(ctx)
	})
	g.Go(func() error {
		return a.store.RunJanitor(
			gCtx, a.config.JanitorInterval.Duration, a.config.SessionTTL.Duration,
		)
	})

	return g.Wait()
}
