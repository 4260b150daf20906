package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joncooperworks/sshcrypt/config"
	"github.com/joncooperworks/sshcrypt/crypto/ciphers"
	"github.com/joncooperworks/sshcrypt/crypto/keystore"
	"github.com/joncooperworks/sshcrypt/crypto/padding"
	"github.com/joncooperworks/sshcrypt/plugin"
)

func main() {
	var (
		configPath  = flag.String("config", "sshcrypt.yaml", "Path to configuration file")
		cipherName  = flag.String("cipher", "", "Cipher name (default from config)")
		keyHex      = flag.String("key", "", "Raw key as hex")
		passphrase  = flag.String("passphrase", "", "Passphrase to expand into a key")
		keystoreKey = flag.String("keystore-key", "", "Key ID of a key blob in the keystore")
		ivHex       = flag.String("iv", "", "IV as hex (default from config, else zeros)")
		padName     = flag.String("pad", "", "Padding for block ciphers: pkcs7 or none (default from config)")
		inPath      = flag.String("in", "", "Input file (default stdin)")
		outPath     = flag.String("out", "", "Output file (default stdout)")
		decrypt     = flag.Bool("decrypt", false, "Decrypt instead of encrypt")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	ctx := context.Background()

	name := firstNonEmpty(*cipherName, cfg.Cipher.Name)
	sources := 0
	for _, s := range []string{*keyHex, *passphrase, *keystoreKey} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		fmt.Fprintf(os.Stderr, "Error: exactly one of -key, -passphrase or -keystore-key is required\n")
		os.Exit(1)
	}

	registry, err := plugin.Extend(ctx, ciphers.Default(), cfg.Plugins, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading plugins: %v\n", err)
		os.Exit(1)
	}

	c, err := allocate(ctx, registry, cfg, name, *keyHex, *passphrase, *keystoreKey, !*decrypt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error allocating cipher %s: %v\n", name, err)
		os.Exit(1)
	}
	defer c.Free()

	if iv := firstNonEmpty(*ivHex, cfg.Cipher.IV); iv != "" {
		raw, err := hex.DecodeString(iv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding IV: %v\n", err)
			os.Exit(1)
		}
		if err := c.SetIV(raw); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting IV: %v\n", err)
			os.Exit(1)
		}
	}

	padder, err := padding.Parse(firstNonEmpty(*padName, cfg.Cipher.Padding))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if c.BlockLength() == 1 {
		padder = padding.None{}
	}

	data, err := readInput(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	out, err := run(c, padder, data, *decrypt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error transforming data: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutput(*outPath, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	logger.Info("transform complete",
		"cipher", c.Name(),
		"decrypt", *decrypt,
		"padding", padder.Name(),
		"in_bytes", len(data),
		"out_bytes", len(out),
	)
}

func allocate(ctx context.Context, r *ciphers.Registry, cfg config.Config, name, keyHex, passphrase, keystoreKey string, forEncryption bool) (*ciphers.Cipher, error) {
	if passphrase != "" {
		return r.AllocateWithPassphrase(name, []byte(passphrase), forEncryption)
	}

	var key []byte
	if keyHex != "" {
		var err error
		if key, err = hex.DecodeString(keyHex); err != nil {
			return nil, fmt.Errorf("failed to decode key: %w", err)
		}
	} else {
		ks, err := keystore.New(ctx, cfg.Keystore)
		if err != nil {
			return nil, fmt.Errorf("failed to create keystore: %w", err)
		}
		defer ks.Close()
		blob, err := ks.GetBlob(ctx, keystoreKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load key %s: %w", keystoreKey, err)
		}
		if blob.Public {
			return nil, errors.New("keystore entry is a public key blob")
		}
		key = blob.Data
	}
	return r.AllocateAndTestWeakKeys(name, key, forEncryption)
}

func run(c *ciphers.Cipher, padder padding.Padder, data []byte, decrypt bool) ([]byte, error) {
	if !decrypt {
		buf := padder.Pad(data, c.BlockLength())
		if err := c.Transform(buf, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}
	buf := append([]byte(nil), data...)
	if err := c.Transform(buf, buf); err != nil {
		return nil, err
	}
	return padder.Unpad(buf, c.BlockLength())
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
