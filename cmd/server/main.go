// Package main - Entry point for the parking fee HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"parking-fee/adapters/hcl"
	"parking-fee/api"
	"parking-fee/core/schedule"
	"parking-fee/internal/config"
	"parking-fee/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgFile := flag.String("config", "", "Config file")
	addr := flag.String("addr", "", "Server address (overrides server.addr)")
	tables := flag.String("tables", "", "Price table file or directory (overrides pricing.tables_path)")
	flag.Parse()

	cfg := config.Default()
	if *cfgFile != "" {
		loaded, err := config.Load(*cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *tables != "" {
		cfg.Pricing.TablesPath = *tables
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	registry := schedule.NewRegistry()
	loader := hcl.NewLoader(hcl.WithStrictDurations(cfg.Pricing.StrictDurations))
	if err := loader.LoadInto(context.Background(), cfg.Pricing.TablesPath, registry); err != nil {
		logging.Error("failed to load price tables", zap.Error(err))
		os.Exit(1)
	}

	server := api.NewServer(version, registry, api.WithCurrency(cfg.Pricing.Currency))

	logging.Info("parking fee server starting",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr),
		zap.Int("tables", registry.Len()))

	if err := server.ListenAndServe(cfg.Server.Addr); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
