package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"thermo/internal/config"
	"thermo/internal/daemon"
	"thermo/internal/ipc"
	"thermo/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := openJournal(cfg)
	if err != nil {
		logger.Error("open journal", logging.Error(err))
		return
	}
	if store != nil {
		defer store.Close()
	}

	d, err := daemon.New(cfg, store, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(ctx, cfg.SocketPath(), d, logger)
	if err != nil {
		logger.Error("start IPC server", logging.Error(err))
		return
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(ctx); err != nil {
		logger.Warn("endpoint registration", logging.Error(err))
	}

	<-ctx.Done()
	logger.Info("thermod shutting down")
}
