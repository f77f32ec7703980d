package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"arcade/internal/catalog"
	"arcade/internal/config"
	"arcade/internal/handlers"
	"arcade/internal/logger"
	"arcade/internal/portal"
)

//go:embed static/*
var embeddedStatic embed.FS

type options struct {
	configPath string
	addr       string
	catalog    string
	logLevel   string
	logFile    string
	sessionTTL time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:          "arcade-web",
		Short:        "Serve the game library and player",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, &opts, os.Getenv)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file")
	flags.StringVar(&opts.addr, "addr", "", "listen address (default :8080, or :$PORT)")
	flags.StringVar(&opts.catalog, "catalog", "", "games JSON file (default: bundled list)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	flags.StringVar(&opts.logFile, "log-file", "", "also write JSON logs to this file")
	flags.DurationVar(&opts.sessionTTL, "session-ttl", 0, "forget visitors idle this long")
	return cmd
}

// resolveConfig layers defaults, the config file, the environment and flags.
func resolveConfig(cmd *cobra.Command, opts *options, getenv func(string) string) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(getenv)

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = opts.addr
	}
	if flags.Changed("catalog") {
		cfg.Catalog = opts.catalog
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("session-ttl") {
		cfg.SessionTTL = opts.sessionTTL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	level, _ := config.ParseLevel(cfg.LogLevel)
	logOpts := logger.Options{Level: level}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOpts.File = f
	}
	log := logger.New(logOpts)

	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	// Read once. A failure is kept for the life of the process.
	games := catalog.FromPath(cfg.Catalog, log)
	if games.Failed() {
		log.Error("catalog unavailable, serving error display", "err", games.Err())
	} else {
		log.Info("catalog loaded", "items", games.Len())
	}

	store := portal.NewStore(games, log)
	go store.RunReaper(ctx, cfg.SessionTTL)

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
		handlers.NewHomeHandler(store, log, cfg.CookieSecure).RegisterRoutes(r)
		handlers.NewFullscreenHandler(store, log, cfg.CookieSecure).RegisterRoutes(r)
	})
	// SSE connections outlive the request timeout.
	handlers.NewStreamHandler(store).RegisterRoutes(r)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      0,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "url", "http://localhost"+cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
