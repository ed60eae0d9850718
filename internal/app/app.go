// Package app wires configuration and the long-lived components: transport
// clients, the media store, the extraction scraper, and the quote builder.
// Components hold no per-call state, so one App serves concurrent requests.
package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goquote/internal/fetch"
	"github.com/hyperifyio/goquote/internal/imagepick"
	"github.com/hyperifyio/goquote/internal/render"
	"github.com/hyperifyio/goquote/internal/scrape"
	"github.com/hyperifyio/goquote/internal/store"
)

type App struct {
	cfg     Config
	Store   *store.FileStore
	Scraper *scrape.Scraper
	Builder *render.Builder
}

func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	st, err := store.New(cfg.MediaDir)
	if err != nil {
		return nil, fmt.Errorf("init media store: %w", err)
	}

	pageClient := &fetch.Client{
		UserAgent:         cfg.UserAgent,
		ProxyURL:          cfg.ProxyURL,
		PerRequestTimeout: cfg.PageTimeout,
	}
	// Image downloads use a direct, shorter-lived client; the scraping proxy
	// is only for page fetches.
	imageClient := &fetch.Client{
		UserAgent:         cfg.UserAgent,
		PerRequestTimeout: cfg.ImageTimeout,
	}

	a := &App{
		cfg:   cfg,
		Store: st,
		Scraper: &scrape.Scraper{
			Client: pageClient,
			Images: &imagepick.Picker{
				Client:       imageClient,
				Store:        st,
				PublicPrefix: cfg.MediaPrefix,
			},
		},
		Builder: &render.Builder{Now: time.Now},
	}
	log.Info().
		Str("mediaDir", cfg.MediaDir).
		Dur("pageTimeout", cfg.PageTimeout).
		Dur("imageTimeout", cfg.ImageTimeout).
		Msg("app initialized")
	return a, nil
}

// Config returns the effective configuration.
func (a *App) Config() Config {
	return a.cfg
}
