// Package plugin loads external cipher engines into the cipher registry.
// Loaders are registered by type; "wasm" modules run through Extism.
package plugin

import (
	"context"

	"github.com/joncooperworks/sshcrypt/config"
	"github.com/joncooperworks/sshcrypt/crypto/ciphers"
)

// Loader turns the raw bytes of a plugin module into a cipher descriptor.
//
// The returned descriptor's Init must produce independent engines: each
// allocated cipher owns its own plugin instance and releases it on Free.
type Loader interface {
	Load(ctx context.Context, data []byte, spec config.Plugin) (ciphers.Descriptor, error)
}
