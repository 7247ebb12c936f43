package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/yndnr/sealslot-go/internal/core/service"
	"github.com/yndnr/sealslot-go/internal/infra/buildinfo"
	"github.com/yndnr/sealslot-go/internal/infra/confloader"
	"github.com/yndnr/sealslot-go/internal/infra/shutdown"
	"github.com/yndnr/sealslot-go/internal/infra/tlsroots"
	"github.com/yndnr/sealslot-go/internal/server/config"
	"github.com/yndnr/sealslot-go/internal/server/httpserver"
	"github.com/yndnr/sealslot-go/internal/storage/memory"
	"github.com/yndnr/sealslot-go/internal/telemetry/logger"
	"github.com/yndnr/sealslot-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		addr        = flag.String("addr", "", "Listen address (overrides server.http.addr)")
		logLevel    = flag.String("log-level", "", "Log level (overrides log.level)")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("sealslot-server " + buildinfo.String())
		return nil
	}

	overrides := map[string]any{}
	if *addr != "" {
		overrides["server.http.addr"] = *addr
	}
	if *logLevel != "" {
		overrides["log.level"] = *logLevel
	}

	opts := []confloader.Option{confloader.WithOverrides(overrides)}
	if *configFile != "" {
		opts = append(opts, confloader.WithConfigFile(*configFile))
	}
	loader := confloader.NewLoader(opts...)

	cfg, err := loadConfig(loader)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	bi := buildinfo.Get()
	log.Info("starting sealslot-server",
		"version", bi.Version,
		"commit", bi.Commit,
		"config", *configFile)
	log.Debug("effective configuration", "config", config.Sanitize(cfg))

	metrics := metric.NewRegistry()
	protocol := initServices(cfg, metrics)
	log.Info("services initialized",
		"seed_payload_bytes", len(cfg.Store.SeedPayload),
		"history_limit", cfg.Store.HistoryLimit)

	var limiter *service.RateLimiterRegistry
	if rl := cfg.Server.HTTP.RateLimit; rl.Requests > 0 {
		limiter = service.NewRateLimiterRegistry(rl.Requests, rl.Window)
	}

	var draining atomic.Bool
	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Protocol: protocol,
		Limiter:  limiter,
		Metrics:  metrics,
		Logger:   log,
		HTTP:     cfg.Server.HTTP,
		Ready:    func() bool { return !draining.Load() },
	})

	serverOpts := []httpserver.Option{httpserver.WithErrorLogger(log)}
	var certs *tlsroots.CertReloader
	if cfg.Server.HTTP.TLSEnabled() {
		certs, err = tlsroots.NewCertReloader(cfg.Server.HTTP.TLSCertFile, cfg.Server.HTTP.TLSKeyFile, log)
		if err != nil {
			return fmt.Errorf("init tls: %w", err)
		}
		serverOpts = append(serverOpts, httpserver.WithCertReloader(certs))
	}
	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router, serverOpts...)

	shutdownHandler := shutdown.NewHandler(cfg.Server.ShutdownTimeout)

	// Hooks run in reverse order of registration.
	shutdownHandler.OnShutdown("http", func(ctx context.Context) error {
		draining.Store(true)
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	watcher, err := startWatcher(loader, certs, log)
	if err != nil {
		log.Warn("file watching disabled", "error", err)
	}
	if watcher != nil {
		shutdownHandler.OnShutdown("watcher", func(context.Context) error {
			return watcher.Stop()
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr, "tls", httpServer.TLS())
		if err := httpServer.ListenAndServe(); err != nil {
			log.Error("HTTP server error", "error", err)
			serveErr <- err
			cancel()
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	default:
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file, environment and flags.
func loadConfig(loader *confloader.Loader) (*config.ServerConfig, error) {
	cfg := config.Default()

	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger with redaction and installs
// it as the default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
		Attrs:  []any{"service", "sealslot-server"},
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// initServices wires the stores, the registry and the protocol, and
// exposes their state as gauges.
func initServices(cfg *config.ServerConfig, metrics *metric.Registry) *service.ProtocolService {
	records := memory.NewRecordStore(
		memory.WithSeedPayload(cfg.Store.SeedPayload),
		memory.WithHistoryLimit(cfg.Store.HistoryLimit),
	)
	registry := service.NewRegistryService(memory.NewClientStore())
	protocol := service.NewProtocolService(registry, records, metrics)

	metrics.MustRegister(metric.NewStateCollector(metric.StateFunc{
		ClientsFn:      registry.Count,
		HistoryDepthFn: protocol.HistoryDepth,
	}))

	return protocol
}

// startWatcher watches the config file and TLS key pair. Config changes
// re-apply the log level; key pair changes reload the certificate. It
// returns nil when there is nothing to watch.
func startWatcher(loader *confloader.Loader, certs *tlsroots.CertReloader, log logger.Logger) (*confloader.Watcher, error) {
	var files []string
	if loader.FilePath() != "" {
		files = append(files, loader.FilePath())
	}
	if certs != nil {
		certFile, keyFile := certs.Files()
		files = append(files, certFile, keyFile)
	}
	if len(files) == 0 {
		return nil, nil
	}

	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := watcher.Watch(f); err != nil {
			watcher.Stop()
			return nil, err
		}
	}

	watcher.OnChange(func(path string) {
		if certs != nil && certs.Owns(path) {
			// Reload logs its own outcome and keeps the old pair on failure.
			_ = certs.Reload()
			return
		}

		next := config.Default()
		if err := loader.Reload(next); err != nil {
			log.Error("config reload failed", "path", path, "error", err)
			return
		}
		if err := config.Verify(next); err != nil {
			log.Error("reloaded config is invalid, keeping current settings", "path", path, "error", err)
			return
		}

		logger.SetLevel(next.Log.Level)
		log.Info("configuration reloaded", "path", path, "log_level", next.Log.Level)
	})

	watcher.StartAsync()
	return watcher, nil
}
