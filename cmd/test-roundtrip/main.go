package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/joncooperworks/sshcrypt/config"
	"github.com/joncooperworks/sshcrypt/crypto/ciphers"
	"github.com/joncooperworks/sshcrypt/plugin"
)

const blocksPerMessage = 8

func main() {
	var (
		configPath = flag.String("config", "sshcrypt.yaml", "Path to configuration file")
		workers    = flag.Int("workers", runtime.NumCPU(), "Ciphers tested concurrently")
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
		fmt.Fprintf(os.Stderr, "Error loading plugins: %v\n", err)
		os.Exit(1)
	}

	names := registry.NativeNames()
	results := make([]error, len(names))

	fmt.Printf("Testing encryption/decryption round-trip for %d ciphers...\n", len(names))

	var g errgroup.Group
	g.SetLimit(max(*workers, 1))
	for i, name := range names {
		g.Go(func() error {
			results[i] = roundTrip(registry, name)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, name := range names {
		if results[i] != nil {
			failed++
			fmt.Printf("✗ %s: %v\n", name, results[i])
			logger.Error("round trip failed", "cipher", name, "error", results[i])
			continue
		}
		fmt.Printf("✓ %s\n", name)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d of %d ciphers failed\n", failed, len(names))
		os.Exit(1)
	}
	fmt.Println("All round-trips passed")
}

// roundTrip encrypts a random message in one call and in two halves,
// checks both agree, then decrypts it back.
func roundTrip(r *ciphers.Registry, name string) error {
	blockLength, err := r.BlockLength(name)
	if err != nil {
		return err
	}
	key := make([]byte, 32)
	plain := make([]byte, blockLength*blocksPerMessage)
	iv := make([]byte, blockLength)
	for _, b := range [][]byte{key, plain, iv} {
		if _, err := rand.Read(b); err != nil {
			return fmt.Errorf("failed to generate test data: %w", err)
		}
	}

	whole, err := transform(r, name, key, iv, true, plain)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	half := len(plain) / 2
	split, err := transform(r, name, key, iv, true, plain[:half], plain[half:])
	if err != nil {
		return fmt.Errorf("encrypt in parts: %w", err)
	}
	if !bytes.Equal(whole, split) {
		return errors.New("IV not carried across calls")
	}
	if name != ciphers.NoneName && bytes.Equal(whole, plain) {
		return errors.New("ciphertext equals plaintext")
	}

	decrypted, err := transform(r, name, key, iv, false, whole)
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}
	if !bytes.Equal(decrypted, plain) {
		return errors.New("decrypted data does not match original")
	}
	return nil
}

func transform(r *ciphers.Registry, name string, key, iv []byte, forEncryption bool, parts ...[]byte) ([]byte, error) {
	c, err := r.Allocate(name, key, forEncryption)
	if err != nil {
		return nil, err
	}
	defer c.Free()
	if err := c.SetIV(iv); err != nil {
		return nil, err
	}

	var out []byte
	for _, p := range parts {
		buf := make([]byte, len(p))
		if err := c.Transform(buf, p); err != nil {
			return nil, err
		}
		out = append(out, buf...)
	}
	return out, nil
}
