package keystore

import (
	"context"
	"fmt"

	"github.com/joncooperworks/sshcrypt/config"
)

// New opens the keystore backend named by cfg.Backend.
func New(ctx context.Context, cfg config.Keystore) (Keystore, error) {
	factory, err := GetKeystoreFactory(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("unsupported keystore backend: %w", err)
	}
	return factory(ctx, cfg)
}
