package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joncooperworks/sshcrypt/config"
	"github.com/joncooperworks/sshcrypt/crypto/ciphers"
	"github.com/joncooperworks/sshcrypt/crypto/keyblob"
	"github.com/joncooperworks/sshcrypt/crypto/keystore"
	"github.com/joncooperworks/sshcrypt/plugin"
)

// defaultVariableKeyLength is used for ciphers that take any key length.
const defaultVariableKeyLength = 32

func main() {
	var (
		configPath  = flag.String("config", "sshcrypt.yaml", "Path to configuration file")
		cipherName  = flag.String("cipher", "", "Cipher the key is generated for (default from config)")
		length      = flag.Int("length", 0, "Key length in bytes for variable-length ciphers")
		outPath     = flag.String("out", "key.blob", "Path to save the private key blob (empty to skip)")
		headers     = flag.String("headers", "", "Key blob header lines (default from config)")
		keystoreKey = flag.String("keystore-key", "", "Also store the blob in the keystore under this ID")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	ctx := context.Background()

	registry, err := plugin.Extend(ctx, ciphers.Default(), cfg.Plugins, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading plugins: %v\n", err)
		os.Exit(1)
	}

	name := *cipherName
	if name == "" {
		name = cfg.Cipher.Name
	}
	n, err := registry.KeyLength(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if n == 0 {
		n = defaultVariableKeyLength
		if *length > 0 {
			n = *length
		}
	}

	key := make([]byte, n)
	if _, err := rand.Read(key); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
		os.Exit(1)
	}

	// Reject weak draws before writing anything.
	c, err := registry.AllocateAndTestWeakKeys(name, key, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error checking key: %v\n", err)
		os.Exit(1)
	}
	c.Free()

	h := *headers
	if h == "" {
		h = cfg.KeyBlob.Headers
	}
	if h == "" {
		h = "Cipher: " + name
	}
	blob := keyblob.New(key, h, false)

	if *outPath != "" {
		if err := keyblob.WriteFile(*outPath, blob, 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing key blob: %v\n", err)
			os.Exit(1)
		}
	}

	if *keystoreKey != "" {
		ks, err := keystore.New(ctx, cfg.Keystore)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating keystore: %v\n", err)
			os.Exit(1)
		}
		defer ks.Close()
		if err := ks.SetBlob(ctx, *keystoreKey, blob); err != nil {
			fmt.Fprintf(os.Stderr, "Error storing key in keystore: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Key generated successfully:\n")
	fmt.Printf("  Cipher: %s\n", name)
	fmt.Printf("  Length: %d bytes\n", n)
	if *outPath != "" {
		fmt.Printf("  Key blob: %s\n", *outPath)
	}
	if *keystoreKey != "" {
		fmt.Printf("  Keystore ID: %s\n", *keystoreKey)
	}
}
