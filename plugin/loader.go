package plugin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joncooperworks/sshcrypt/config"
	"github.com/joncooperworks/sshcrypt/crypto/ciphers"
)

// DefaultType is the loader used when a plugin entry names no type.
const DefaultType = "wasm"

// Load reads the module named by spec.Path and turns it into a cipher
// descriptor using the loader registered for spec.Type.
func Load(ctx context.Context, spec config.Plugin, logger *slog.Logger) (ciphers.Descriptor, error) {
	if spec.Name == "" {
		return ciphers.Descriptor{}, errors.New("plugin name is required")
	}
	if spec.Path == "" {
		return ciphers.Descriptor{}, fmt.Errorf("plugin %s: path is required", spec.Name)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	typ := spec.Type
	if typ == "" {
		typ = DefaultType
	}
	factory, err := GetLoaderFactory(typ)
	if err != nil {
		return ciphers.Descriptor{}, fmt.Errorf("plugin %s: %w", spec.Name, err)
	}
	loader, err := factory(logger)
	if err != nil {
		return ciphers.Descriptor{}, fmt.Errorf("failed to create %s loader: %w", typ, err)
	}

	data, err := os.ReadFile(spec.Path)
	if err != nil {
		return ciphers.Descriptor{}, fmt.Errorf("failed to read plugin %s: %w", spec.Name, err)
	}
	return loader.Load(ctx, data, spec)
}

// Extend returns base extended with every plugin in specs. base is returned
// unchanged when specs is empty.
func Extend(ctx context.Context, base *ciphers.Registry, specs []config.Plugin, logger *slog.Logger) (*ciphers.Registry, error) {
	if len(specs) == 0 {
		return base, nil
	}
	descriptors := make([]ciphers.Descriptor, 0, len(specs))
	for _, spec := range specs {
		d, err := Load(ctx, spec, logger)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	return base.With(descriptors...)
}
