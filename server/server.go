package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/didwallet/zk-disclosure/engine"
	"github.com/didwallet/zk-disclosure/keycache"
	"github.com/didwallet/zk-disclosure/prover"
	gnarkprover "github.com/didwallet/zk-disclosure/prover/gnark"
	"github.com/didwallet/zk-disclosure/server/api"
)

type ServeConfig struct {
	// Server settings
	Host string
	Port int

	// Proving settings
	Backend      string // "gnark" or "mock"
	CircuitsDir  string // directory holding compiled circuits and proving keys
	ProveTimeout time.Duration
	MaxStaleness time.Duration

	// Performance settings
	MaxRequestSize  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Security settings
	EnableCORS  bool
	CorsOrigins []string

	// Observability
	EnablePprof bool
	LogLevel    string
	LogFormat   string // "json" or "text"

	// TLS settings
	EnableTLS bool
	CertFile  string
	KeyFile   string
}

func Run(cfg *ServeConfig) error {
	// Validate configuration
	if err := validateServeConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Setup structured logging
	logger := SetupLogger(cfg.LogLevel, cfg.LogFormat)

	eng, err := buildEngine(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build proof engine: %w", err)
	}
	verifier := engine.NewVerifier(nil, cfg.MaxStaleness)

	// Create server
	server := api.NewServer(eng, verifier)

	// Setup router with middleware
	r := setupRouter(server, cfg, logger)

	// Configure HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	httpServer := &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", addr, "backend", cfg.Backend, "tls", cfg.EnableTLS)

		var err error
		if cfg.EnableTLS {
			err = httpServer.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	logger.Info("Shutting down server gracefully...")
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

// buildEngine wires the prover backend and proving-key source for the
// configured mode. The gnark backend reads keys from the setup directory;
// the mock backend ignores key material entirely, so it gets a static
// in-memory source and needs no compiled circuits on disk.
func buildEngine(cfg *ServeConfig, logger Logger) (*engine.Engine, error) {
	var backend prover.Backend
	var src keycache.Source
	switch cfg.Backend {
	case "mock":
		logger.Warn("Using the deterministic mock prover; proofs are not cryptographically sound")
		backend = &prover.Mock{}
		src = keycache.SourceFunc(func(ctx context.Context, circuitID string) ([]byte, error) {
			return []byte("mock-proving-key:" + circuitID), nil
		})
	default:
		versions := make(map[string]uint, len(gnarkprover.Circuits))
		for id, spec := range gnarkprover.Circuits {
			versions[id] = spec.Version
		}
		backend = gnarkprover.NewBackend(cfg.CircuitsDir)
		src = &keycache.DirSource{Dir: cfg.CircuitsDir, Versions: versions}
	}

	return engine.New(engine.Config{
		Backend:      backend,
		Keys:         keycache.NewCache(src),
		Logger:       logger.Slog(),
		ProveTimeout: cfg.ProveTimeout,
	})
}

func validateServeConfig(cfg *ServeConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}

	switch cfg.Backend {
	case "", "gnark", "mock":
	default:
		return fmt.Errorf("unknown prover backend: %s", cfg.Backend)
	}

	if cfg.EnableTLS {
		if cfg.CertFile == "" || cfg.KeyFile == "" {
			return fmt.Errorf("TLS enabled but cert-file or key-file not provided")
		}
		if _, err := os.Stat(cfg.CertFile); err != nil {
			return fmt.Errorf("cert file not found: %s", cfg.CertFile)
		}
		if _, err := os.Stat(cfg.KeyFile); err != nil {
			return fmt.Errorf("key file not found: %s", cfg.KeyFile)
		}
	}

	// The mock backend needs no setup artifacts, gnark does.
	if cfg.Backend != "mock" {
		if _, err := os.Stat(cfg.CircuitsDir); err != nil {
			return fmt.Errorf("circuits directory not found: %s", cfg.CircuitsDir)
		}
	}

	return nil
}
