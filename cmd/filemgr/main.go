package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/orbitward/filemgr/internal/config"
	"github.com/orbitward/filemgr/internal/logging"
	"github.com/orbitward/filemgr/internal/server"
)

func main() {
	port := flag.String("port", "", "Server port (overrides FILEMGR_PORT)")
	monitorTable := flag.String("monitor-table", "", "Free-space monitor table path (overrides FILEMGR_MONITOR_TABLE)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *monitorTable != "" {
		cfg.Monitor.TablePath = *monitorTable
	}

	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}
	defer logger.Sync()

	srv, err := server.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
