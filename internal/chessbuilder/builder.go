// Package chessbuilder wires the game stack shared by the bot and the HTTP server.
package chessbuilder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/park285/cheese-chess-rules/internal/adapter/chesspresenter"
	"github.com/park285/cheese-chess-rules/internal/config"
	"github.com/park285/cheese-chess-rules/internal/game"
	"github.com/park285/cheese-chess-rules/internal/msgcat"
	"github.com/park285/cheese-chess-rules/internal/obslog"
	"github.com/park285/cheese-chess-rules/internal/render"
)

type Deps struct {
	Manager   *game.Manager
	Repo      game.Repository
	Catalog   *msgcat.Catalog
	Viewer    *chesspresenter.Viewer
	Formatter *chesspresenter.Formatter

	closers []func() error
}

type prefixProvider struct{ prefix string }

func (p prefixProvider) Prefix() string { return p.prefix }

// New connects Redis (required) and Postgres (optional). Without DATABASE_URL
// finished games are archived in memory only.
func New(cfg *config.AppConfig) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	d := &Deps{}

	catalog, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	d.Catalog = catalog

	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		pg, err := game.NewPostgresRepository(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}
		d.Repo = pg
		d.closers = append(d.closers, pg.Close)
	} else {
		obslog.L().Warn("results_in_memory", zap.String("reason", "DATABASE_URL not set"))
		d.Repo = game.NewMemoryRepository()
	}

	mgr, err := game.NewManager(cfg.RedisURL,
		game.WithRepository(d.Repo),
		game.WithTTL(time.Duration(cfg.GameTTLSec)*time.Second),
	)
	if err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("init game manager: %w", err)
	}
	d.Manager = mgr
	d.closers = append(d.closers, mgr.Close)

	rctx, rcancel := context.WithTimeout(context.Background(), 5*time.Second)
	if n, err := mgr.RetryPendingArchives(rctx); err != nil {
		obslog.L().Warn("results_pending_retry_error", zap.Error(err))
	} else if n > 0 {
		obslog.L().Info("results_pending_flushed", zap.Int("count", n))
	}
	rcancel()

	d.Viewer = chesspresenter.NewViewer(render.NewSVGBoardRenderer())
	d.Formatter = chesspresenter.NewFormatter(prefixProvider{prefix: cfg.BotPrefix}, catalog)
	return d, nil
}

// Close releases connections in reverse order of creation.
func (d *Deps) Close() error {
	if d == nil {
		return nil
	}
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
