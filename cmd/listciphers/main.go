package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joncooperworks/sshcrypt/config"
	"github.com/joncooperworks/sshcrypt/crypto/ciphers"
	"github.com/joncooperworks/sshcrypt/plugin"
)

func main() {
	var (
		configPath = flag.String("config", "sshcrypt.yaml", "Path to configuration file")
		native     = flag.Bool("native", false, "List canonical names only, comma separated")
		all        = flag.Bool("all", false, "List canonical names and aliases, comma separated")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	registry, err := plugin.Extend(context.Background(), ciphers.Default(), cfg.Plugins, logger)
	if err != nil {
		logger.Error("failed to load plugins", "error", err)
		os.Exit(1)
	}

	switch {
	case *native:
		fmt.Println(registry.SupportedNative())
		return
	case *all:
		fmt.Println(registry.SupportedList())
		return
	}

	fmt.Printf("Ciphers (%d):\n", len(registry.NativeNames()))
	for _, name := range registry.NativeNames() {
		d, _ := registry.Descriptor(name)
		fmt.Printf("  - %-14s block %2d  key %s\n", name, d.BlockLength, keyLengthString(d.KeyLength))
	}
	for _, name := range registry.Names() {
		if target, _ := registry.NativeName(name); target != name {
			fmt.Printf("  - %-14s alias of %s\n", name, target)
		}
	}
}

func keyLengthString(n int) string {
	if n == 0 {
		return "variable"
	}
	return strconv.Itoa(n)
}
