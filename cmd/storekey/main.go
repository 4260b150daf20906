package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joncooperworks/sshcrypt/config"
	"github.com/joncooperworks/sshcrypt/crypto/keyblob"
	"github.com/joncooperworks/sshcrypt/crypto/keystore"
)

func main() {
	var (
		configPath    = flag.String("config", "sshcrypt.yaml", "Path to configuration file")
		blobPath      = flag.String("blob", "", "Path to key blob file to import (required)")
		keystoreKeyID = flag.String("keystore-key", "", "Key ID to store the blob under (required)")
		remove        = flag.Bool("delete", false, "Delete the key ID instead of importing")
	)
	flag.Parse()

	if *keystoreKeyID == "" {
		fmt.Fprintf(os.Stderr, "Error: -keystore-key is required\n")
		os.Exit(1)
	}
	if *blobPath == "" && !*remove {
		fmt.Fprintf(os.Stderr, "Error: -blob is required\n")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()

	ks, err := keystore.New(ctx, cfg.Keystore)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating keystore: %v\n", err)
		os.Exit(1)
	}
	defer ks.Close()

	if *remove {
		if err := ks.DeleteBlob(ctx, *keystoreKeyID); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting key from keystore: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Key %s deleted from keystore\n", *keystoreKeyID)
		return
	}

	blob, err := keyblob.ReadFileLimit(*blobPath, cfg.KeyBlob.MaxSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading key blob: %v\n", err)
		os.Exit(1)
	}

	if err := ks.SetBlob(ctx, *keystoreKeyID, blob); err != nil {
		fmt.Fprintf(os.Stderr, "Error storing key in keystore: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Key blob imported successfully:\n")
	fmt.Printf("  Source: %s\n", *blobPath)
	fmt.Printf("  Keystore ID: %s\n", *keystoreKeyID)
	fmt.Printf("  Backend: %s\n", cfg.Keystore.Backend)
	if !blob.Public {
		fmt.Printf("  Note: You can now delete the blob file for security\n")
	}
}
