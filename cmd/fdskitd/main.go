// fdskitd serves the FDS case formatting API over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/openfds/fdskit/pkg/api"
	"github.com/openfds/fdskit/pkg/canon"
	"github.com/openfds/fdskit/pkg/logging"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "HTTP API listen address")
	apiKey := flag.String("api-key", "", "API key clients must present (empty disables auth)")
	configFile := flag.String("config", "", "formatting options YAML file")
	debug := flag.Bool("debug", false, "enable debug logging")
	logFile := flag.String("log-file", "", "also write logs to this file, with rotation")
	flag.Parse()

	closer, err := logging.Setup(*debug, *logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fdskitd: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	cfg := api.Config{Addr: *addr}
	if *apiKey != "" {
		cfg.Auth = &api.AuthConfig{APIKeys: map[string]bool{*apiKey: true}}
	}
	if *configFile != "" {
		opts, err := canon.LoadOptions(*configFile)
		if err != nil {
			slog.Error("load formatting options", "error", err)
			os.Exit(1)
		}
		cfg.Canon = opts
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := api.NewServer(cfg).Run(ctx); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}
