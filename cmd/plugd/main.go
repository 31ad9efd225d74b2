package main

import (
	"context"
	"log"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/btkostner/plug/internal/app"
	"github.com/btkostner/plug/pkg/config"
	"github.com/btkostner/plug/pkg/logger"
)

func main() {
	_ = godotenv.Load(".env")
	cfgPath, addr := config.ParseCommandFlags()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if addr != "" {
		// flag wins over config/env
		host, port := splitAddr(addr)
		cfg.Server.Address = host
		cfg.Server.Port = port
	}

	logger.InitWithLevel(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg).Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// splitAddr parses a host:port flag value, tolerating a bare ":port".
func splitAddr(addr string) (string, int) {
	host, portStr, ok := strings.Cut(addr, ":")
	if host == "" {
		host = "127.0.0.1"
	}
	port := 8080
	if ok {
		if p, err := strconv.Atoi(portStr); err == nil && p > 0 {
			port = p
		}
	}
	return host, port
}
