package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goquote/internal/app"
	"github.com/hyperifyio/goquote/internal/httpapi"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		listenAddr   string
		mediaDir     string
		mediaPrefix  string
		userAgent    string
		proxyURL     string
		pageTimeout  time.Duration
		imageTimeout time.Duration
		configPath   string
		verbose      bool
	)

	flag.StringVar(&listenAddr, "listen", app.DefaultListenAddr, "HTTP listen address")
	flag.StringVar(&mediaDir, "media.dir", app.DefaultMediaDir, "Directory for downloaded images and uploaded logos")
	flag.StringVar(&mediaPrefix, "media.prefix", app.DefaultMediaPrefix, "Public URL prefix serving the media directory")
	flag.StringVar(&userAgent, "ua", app.DefaultUserAgent, "User-Agent for outbound requests")
	flag.StringVar(&proxyURL, "proxy", os.Getenv("SCRAPE_PROXY_URL"), "Scraping proxy URL for page fetches (optional)")
	flag.DurationVar(&pageTimeout, "timeout.page", app.DefaultPageTimeout, "Timeout for page fetches")
	flag.DurationVar(&imageTimeout, "timeout.image", app.DefaultImageTimeout, "Timeout for image downloads")
	flag.StringVar(&configPath, "config", os.Getenv("GOQUOTE_CONFIG"), "Path to YAML/JSON config file (optional)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		ListenAddr:   listenAddr,
		MediaDir:     mediaDir,
		MediaPrefix:  mediaPrefix,
		UserAgent:    userAgent,
		ProxyURL:     proxyURL,
		PageTimeout:  pageTimeout,
		ImageTimeout: imageTimeout,
		Verbose:      verbose,
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("config file failed to load")
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	srv := &httpapi.Server{App: a}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
