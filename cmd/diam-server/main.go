package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/hsdfat8/diam-peer/codec"
	"github.com/hsdfat8/diam-peer/dict"
	"github.com/hsdfat8/diam-peer/internal/config"
	"github.com/hsdfat8/diam-peer/pkg/logger"
	"github.com/hsdfat8/diam-peer/server"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file (empty to search standard paths)")
	listenAddr := flag.String("listen", "", "Listen address override (host:port)")
	logLevel := flag.String("log-level", "", "Log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.Errorw("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger.SetLevel(cfg.Logging.Level)
	logger.Log.Infow("Starting Diameter server...")

	// Load the AVP dictionary
	var d *dict.Dictionary
	if cfg.Dictionary.Path != "" {
		d, err = dict.LoadFile(cfg.Dictionary.Path)
	} else {
		d, err = dict.Default()
	}
	if err != nil {
		logger.Log.Errorw("Failed to load dictionary", "error", err, "path", cfg.Dictionary.Path)
		os.Exit(1)
	}
	logger.Log.Infow("Dictionary loaded", "avps", d.NumAVPs(), "commands", d.NumCommands())

	cdc := codec.NewDictionaryCodec(d)
	log := logger.New("server", "")

	mux := server.BaseMux()
	mux.Use(
		server.RecoveryMiddleware(log),
		server.LoggingMiddleware(log),
	)

	serverConfig := &server.ServerConfig{
		ListenAddress:  cfg.Server.ListenAddr,
		MaxConnections: cfg.Server.MaxConnections,
		Connection: &server.ConnectionConfig{
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			MaxMessageSize: cfg.Server.MaxMessageSize,
		},
	}
	if cfg.Metrics.Enabled {
		serverConfig.StatsInterval = cfg.Metrics.Interval
	}

	srv := server.NewServer(serverConfig, cdc, mux, log)
	if err := srv.Start(); err != nil {
		logger.Log.Errorw("Failed to start server", "error", err)
		os.Exit(1)
	}

	logger.Log.Infow("Server started successfully", "address", srv.Addr().String())

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Log.Infow("Shutdown signal received, stopping server...")
	srv.Stop()
	logger.Log.Infow("Server stopped successfully")
}
