package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/modbank-dev/modbank/internal/bank"
	internalcli "github.com/modbank-dev/modbank/internal/cli"
	"github.com/modbank-dev/modbank/internal/config"
	"github.com/modbank-dev/modbank/internal/ociplugin"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config error: %v\n", err)
		cfg = config.DefaultConfig()
	}
	cfg.ApplyEnvOverrides()

	logger := slog.Default()

	host := bank.NewHost(logger, bank.CoreDescribe, "", cfg.PluginsCache, cfg.ResetPluginsCache)
	host.ScanRoots = append(host.ScanRoots, cfg.ScanRoots...)

	embeddedDir := filepath.Join(config.DefaultConfigDir(), "embedded")
	if dir, err := bank.ExtractEmbedded(embeddedDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to extract embedded plugins: %v\n", err)
	} else {
		host.ScanRoots = append(host.ScanRoots, dir)
	}

	b := &bank.Bank{}
	if _, err := b.Activate(host, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: plugin discovery failed: %v\n", err)
	}
	defer b.EndBank(host, true)

	bundles, err := ociplugin.NewStack(ociplugin.ServiceConfig{
		RequireSigning: cfg.RequireSigning,
		Logger:         logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize plugin bundle service: %v\n", err)
	}

	root := internalcli.NewRootCommand(cfg, b, host, bundles)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
