// Package keystore persists key blobs under string identifiers.
//
// Backends register themselves by name with RegisterKeystore and are chosen
// at run time from config.Keystore.Backend:
//
//	keyring   the OS secret store (Keychain, Secret Service, KWallet,
//	          Windows Credential Manager or an encrypted file directory)
//	memory    a process-local store, for tests and dry runs
//	postgres  a key_blobs table in PostgreSQL
package keystore

import (
	"context"
	"errors"

	"github.com/joncooperworks/sshcrypt/crypto/keyblob"
)

// ErrKeyNotFound is returned when no blob is stored under an id.
var ErrKeyNotFound = errors.New("key not found")

// ErrInvalidID is returned for an empty id.
var ErrInvalidID = errors.New("key id is required")

// Keystore stores key blobs.
type Keystore interface {
	// GetBlob returns the blob stored under id.
	GetBlob(ctx context.Context, id string) (*keyblob.KeyBlob, error)
	// SetBlob stores blob under id, replacing any existing blob.
	SetBlob(ctx context.Context, id string, blob *keyblob.KeyBlob) error
	// DeleteBlob removes the blob stored under id.
	DeleteBlob(ctx context.Context, id string) error
	// ListKeys returns all stored ids.
	ListKeys(ctx context.Context) ([]string, error)
	// Close releases the backend.
	Close() error
}
