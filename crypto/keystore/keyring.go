package keystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	"github.com/joncooperworks/sshcrypt/config"
	"github.com/joncooperworks/sshcrypt/crypto/keyblob"
)

func init() {
	RegisterKeystore("keyring", NewKeyringKeystore)
	RegisterKeystore("memory", func(context.Context, config.Keystore) (Keystore, error) {
		return NewMemoryKeystore(), nil
	})
}

// KeyringKeystore stores blobs in a 99designs/keyring backend.
type KeyringKeystore struct {
	ring keyring.Keyring
}

// NewKeyringKeystore opens the OS keyring described by cfg.
func NewKeyringKeystore(_ context.Context, cfg config.Keystore) (Keystore, error) {
	kc := keyring.Config{
		ServiceName: cfg.ServiceName,
		FileDir:     cfg.FileDir,
	}
	if kc.ServiceName == "" {
		kc.ServiceName = "sshcrypt"
	}
	for _, b := range cfg.AllowedBackends {
		kc.AllowedBackends = append(kc.AllowedBackends, keyring.BackendType(b))
	}
	if cfg.FilePassword != "" {
		kc.FilePasswordFunc = keyring.FixedStringPrompt(cfg.FilePassword)
	}

	ring, err := keyring.Open(kc)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return &KeyringKeystore{ring: ring}, nil
}

// NewMemoryKeystore returns a keystore held in process memory.
func NewMemoryKeystore() *KeyringKeystore {
	return &KeyringKeystore{ring: keyring.NewArrayKeyring(nil)}
}

// GetBlob retrieves and parses the blob stored under id.
func (k *KeyringKeystore) GetBlob(_ context.Context, id string) (*keyblob.KeyBlob, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	item, err := k.ring.Get(id)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, id)
		}
		return nil, fmt.Errorf("failed to get key from keyring: %w", err)
	}

	blob, err := keyblob.Parse(item.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored key %s: %w", id, err)
	}
	return blob, nil
}

// SetBlob stores blob under id as key blob text.
func (k *KeyringKeystore) SetBlob(_ context.Context, id string, blob *keyblob.KeyBlob) error {
	if id == "" {
		return ErrInvalidID
	}
	text, err := blob.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal key blob: %w", err)
	}

	err = k.ring.Set(keyring.Item{
		Key:         id,
		Data:        text,
		Label:       "sshcrypt " + id,
		Description: "sshcrypt key blob",
	})
	if err != nil {
		return fmt.Errorf("failed to store key in keyring: %w", err)
	}
	return nil
}

// DeleteBlob removes the blob stored under id.
func (k *KeyringKeystore) DeleteBlob(ctx context.Context, id string) error {
	if _, err := k.GetBlob(ctx, id); err != nil {
		if errors.Is(err, ErrKeyNotFound) || errors.Is(err, ErrInvalidID) {
			return err
		}
	}
	if err := k.ring.Remove(id); err != nil {
		return fmt.Errorf("failed to remove key from keyring: %w", err)
	}
	return nil
}

// ListKeys returns all ids stored in the keyring.
func (k *KeyringKeystore) ListKeys(context.Context) ([]string, error) {
	keys, err := k.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys from keyring: %w", err)
	}
	return keys, nil
}

// Close is a no-op; keyring backends hold no open handles.
func (k *KeyringKeystore) Close() error { return nil }
