package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joncooperworks/sshcrypt/config"
	"github.com/joncooperworks/sshcrypt/crypto/keyblob"
)

func main() {
	var (
		configPath = flag.String("config", "sshcrypt.yaml", "Path to configuration file")
		blobPath   = flag.String("blob", "", "Path to key blob file to verify (required)")
		quiet      = flag.Bool("quiet", false, "Only report failures")
	)
	flag.Parse()

	if *blobPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -blob is required\n")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	blob, err := keyblob.ReadFileLimit(*blobPath, cfg.KeyBlob.MaxSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error verifying key blob: %v\n", err)
		os.Exit(1)
	}

	if *quiet {
		return
	}

	kind := "private"
	if blob.Public {
		kind = "public"
	}
	fmt.Printf("Key blob verified:\n")
	fmt.Printf("  File: %s\n", *blobPath)
	fmt.Printf("  Version: %d.%d\n", blob.Major, blob.Minor)
	fmt.Printf("  Kind: %s\n", kind)
	fmt.Printf("  Data: %d bytes\n", len(blob.Data))
	if blob.Headers != "" {
		fmt.Printf("  Headers:\n")
		for _, line := range strings.Split(blob.Headers, "\n") {
			fmt.Printf("    %s\n", line)
		}
	}
}
