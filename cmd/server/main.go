package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aikoandre/Chutes-Proxy/internal/config"
	"github.com/aikoandre/Chutes-Proxy/internal/constants"
	"github.com/aikoandre/Chutes-Proxy/internal/logging"
	tracing "github.com/aikoandre/Chutes-Proxy/internal/monitoring/tracing"
	srv "github.com/aikoandre/Chutes-Proxy/internal/server"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	debug := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if *debug {
		cfg.Server.Debug = true
	}

	if err := logging.Setup(cfg); err != nil {
		log.WithError(err).Fatal("failed to configure logging")
	}

	traceShutdown, err := tracing.Init(context.Background())
	if err != nil {
		log.WithError(err).Warn("failed to initialize tracing")
	}
	if traceShutdown != nil {
		defer func() {
			if err := traceShutdown(context.Background()); err != nil {
				log.WithError(err).Warn("failed to shutdown tracing")
			}
		}()
	}

	log.Infof("Starting Chutes-Proxy %s (config: %s)", constants.GetFullVersion(), *configPath)

	engine := srv.Build(cfg)
	httpSrv := &http.Server{Addr: cfg.Addr(), Handler: engine}

	go func() {
		log.Infof("OpenAI-compatible API listening on %s", cfg.Addr())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("http server: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("Shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer cancelShutdown()
	go func() { _ = httpSrv.Shutdown(shutdownCtx) }()

	time.Sleep(constants.ServerGracefulWait)
	log.Info("Server stopped")
}
