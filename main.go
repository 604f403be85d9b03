package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"plantcast/internal/config"
	"plantcast/internal/logger"
	"plantcast/internal/server"
	"plantcast/internal/storage"
)

func main() {
	// .env is optional: local runs keep credentials there, Cloud Run injects
	// real environment variables.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	log := logger.GetGlobalLogger().WithComponent("main")

	mode := resolveDeploymentMode(cfg)
	log.Info("Starting generation forecast service", map[string]interface{}{
		"version":     config.GetVersion(),
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"mode":        string(mode),
	})

	srv, err := server.NewServer(ctx, cfg, mode)
	if err != nil {
		log.Fatal("Failed to initialize server", err)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // report runs render charts and may wait on the LLM
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{"addr": httpServer.Addr})
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Info("Shutting down", map[string]interface{}{"signal": sig.String()})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", err)
	}
	if err := srv.Close(); err != nil {
		log.Error("Failed to release server resources", err)
	}

	log.Info("Server stopped")
}

// resolveDeploymentMode selects GCS storage when a bucket is configured and
// the local filesystem otherwise.
func resolveDeploymentMode(cfg *config.Config) storage.DeploymentMode {
	if cfg.GCSBucket != "" {
		return storage.DeploymentGCS
	}
	return storage.DeploymentLocal
}
