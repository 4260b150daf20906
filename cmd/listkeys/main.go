package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joncooperworks/sshcrypt/config"
	"github.com/joncooperworks/sshcrypt/crypto/keystore"
)

func main() {
	configPath := flag.String("config", "sshcrypt.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	ctx := context.Background()

	ks, err := keystore.New(ctx, cfg.Keystore)
	if err != nil {
		logger.Error("failed to create keystore", "backend", cfg.Keystore.Backend, "error", err)
		os.Exit(1)
	}
	defer ks.Close()

	keys, err := ks.ListKeys(ctx)
	if err != nil {
		logger.Error("failed to list keys", "error", err)
		os.Exit(1)
	}

	if len(keys) == 0 {
		fmt.Println("No keys found in keystore")
		return
	}

	fmt.Printf("Keys in keystore (%d):\n", len(keys))
	for _, keyID := range keys {
		fmt.Printf("  - %s\n", keyID)
	}
}
