package cmd

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/matheuskafuri/techmood/internal/api"
	"github.com/matheuskafuri/techmood/internal/bookmark"
	"github.com/matheuskafuri/techmood/internal/browser"
	"github.com/matheuskafuri/techmood/internal/config"
	"github.com/matheuskafuri/techmood/internal/feed"
	"github.com/matheuskafuri/techmood/internal/logging"
	"github.com/matheuskafuri/techmood/internal/search"
	"github.com/matheuskafuri/techmood/internal/store"
	"github.com/matheuskafuri/techmood/internal/tui"
	"github.com/matheuskafuri/techmood/internal/viewport"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is what every command starts from: config, the file logger and an API
// client. The local store is opened only by commands that need it.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	client   *api.Client
	closeLog func() error
	db       *store.Store
}

func setup() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, closeLog, err := logging.New(config.LogPath(), cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}

	client, err := api.New(cfg.APIURL,
		api.WithTimeout(cfg.TimeoutDuration()),
		api.WithRateLimit(cfg.RateLimit, cfg.RateBurst()),
		api.WithLogger(log),
	)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("creating api client: %w", err)
	}

	return &env{cfg: cfg, log: log, client: client, closeLog: closeLog}, nil
}

// bookmarks opens the local store and the bookmark view over it.
func (e *env) bookmarks() (*bookmark.Store, error) {
	db, err := store.Open(config.StorePath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	bm, err := bookmark.Open(db,
		bookmark.WithSeenLimit(e.cfg.SeenLimit),
		bookmark.WithLogger(e.log),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading bookmarks: %w", err)
	}
	e.db = db
	return bm, nil
}

func (e *env) Close() error {
	var errs []error
	if e.db != nil {
		errs = append(errs, e.db.Close())
	}
	errs = append(errs, e.closeLog())
	return errors.Join(errs...)
}

func (e *env) feedOptions(width int) []feed.Option {
	opts := []feed.Option{
		feed.WithLogger(e.log),
		feed.WithCacheSize(e.cfg.CachePages),
		feed.WithLayout(viewport.Adapter{Breakpoint: e.cfg.Breakpoint}.For(width)),
	}
	return opts
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	bm, err := e.bookmarks()
	if err != nil {
		return err
	}
	if err := e.db.SetLastOpened(); err != nil {
		e.log.Warn("recording last opened", zap.Error(err))
	}

	opts := e.feedOptions(0)
	if e.cfg.Shuffle {
		opts = append(opts, feed.WithShuffle(rand.New(rand.NewSource(time.Now().UnixNano()))))
	}

	e.log.Info("starting",
		zap.String("version", version),
		zap.String("api", e.client.BaseURL()),
		zap.Int("seen", bm.SeenCount()),
	)

	return tui.Run(tui.RunOpts{
		Cfg:       e.cfg,
		Catalog:   e.client,
		Feed:      feed.New(e.client, opts...),
		Search:    search.New(e.client, search.WithRecorder(bm), search.WithLogger(e.log)),
		Bookmarks: bm,
		Log:       e.log,
		Open:      browser.Open,
	})
}

func parseSince(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
