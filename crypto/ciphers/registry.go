// Package ciphers is a registry of symmetric ciphers addressed by name.
//
// Each canonical name such as "twofish-cbc" identifies one Descriptor;
// aliases such as "twofish" map a family name to its CBC form. A Registry is
// immutable once built, so the package-level Default registry is shared
// freely between goroutines. Cipher instances are not: each one owns its IV
// and key state and must be used by one goroutine at a time.
package ciphers

import (
	"errors"
	"fmt"
	"strings"
)

// Registry resolves cipher names to descriptors and allocates instances.
type Registry struct {
	descriptors []*Descriptor
	byName      map[string]*Descriptor
	aliases     []Alias
	byAlias     map[string]string
}

// NewRegistry builds a registry from descriptors and aliases. Names must be
// non-empty and unique, block lengths at least 1, every alias must point at a
// canonical name, and no alias may reuse a canonical name.
func NewRegistry(descriptors []Descriptor, aliases []Alias) (*Registry, error) {
	r := &Registry{
		descriptors: make([]*Descriptor, 0, len(descriptors)),
		byName:      make(map[string]*Descriptor, len(descriptors)),
		aliases:     make([]Alias, 0, len(aliases)),
		byAlias:     make(map[string]string, len(aliases)),
	}
	for i := range descriptors {
		d := descriptors[i]
		switch {
		case d.Name == "":
			return nil, errors.New("descriptor name is required")
		case d.BlockLength < 1:
			return nil, fmt.Errorf("descriptor %s: block length must be at least 1", d.Name)
		case d.KeyLength < 0:
			return nil, fmt.Errorf("descriptor %s: negative key length", d.Name)
		case d.Init == nil:
			return nil, fmt.Errorf("descriptor %s: init function is required", d.Name)
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate cipher name: %s", d.Name)
		}
		r.descriptors = append(r.descriptors, &d)
		r.byName[d.Name] = &d
	}
	for _, a := range aliases {
		if a.Name == "" {
			return nil, errors.New("alias name is required")
		}
		if _, shadow := r.byName[a.Name]; shadow {
			return nil, fmt.Errorf("alias %s shadows a canonical cipher name", a.Name)
		}
		if _, dup := r.byAlias[a.Name]; dup {
			return nil, fmt.Errorf("duplicate alias: %s", a.Name)
		}
		if _, ok := r.byName[a.Target]; !ok {
			return nil, fmt.Errorf("alias %s points at unknown cipher %s", a.Name, a.Target)
		}
		r.aliases = append(r.aliases, a)
		r.byAlias[a.Name] = a.Target
	}
	return r, nil
}

// With returns a new registry holding r's descriptors and aliases followed
// by descriptors. r is not modified.
func (r *Registry) With(descriptors ...Descriptor) (*Registry, error) {
	all := make([]Descriptor, 0, len(r.descriptors)+len(descriptors))
	for _, d := range r.descriptors {
		all = append(all, *d)
	}
	all = append(all, descriptors...)
	return NewRegistry(all, r.aliases)
}

// Descriptor returns a copy of the descriptor name resolves to. Changing the
// copy does not affect the registry.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	d, ok := r.lookup(name)
	if !ok {
		return Descriptor{}, false
	}
	return *d, true
}

// lookup resolves name as a canonical name first and then as an alias.
func (r *Registry) lookup(name string) (*Descriptor, bool) {
	if d, ok := r.byName[name]; ok {
		return d, true
	}
	if target, ok := r.byAlias[name]; ok {
		d, ok := r.byName[target]
		return d, ok
	}
	return nil, false
}

// NativeName returns the canonical name that name resolves to.
func (r *Registry) NativeName(name string) (string, bool) {
	d, ok := r.lookup(name)
	if !ok {
		return "", false
	}
	return d.Name, true
}

// Supported reports whether name resolves to a cipher, aliases included.
func (r *Registry) Supported(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// supportedNative reports whether name is itself a canonical name.
func (r *Registry) supportedNative(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// KeyLength returns the key length of the named cipher, 0 meaning variable.
func (r *Registry) KeyLength(name string) (int, error) {
	d, ok := r.lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	return d.KeyLength, nil
}

// BlockLength returns the block length of the named cipher.
func (r *Registry) BlockLength(name string) (int, error) {
	d, ok := r.lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	return d.BlockLength, nil
}

// NativeNames returns the canonical names in registration order.
func (r *Registry) NativeNames() []string {
	names := make([]string, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		names = append(names, d.Name)
	}
	return names
}

// Names returns the canonical names followed by every alias whose target is
// a canonical name, in registration order.
func (r *Registry) Names() []string {
	names := r.NativeNames()
	for _, a := range r.aliases {
		if r.supportedNative(a.Target) {
			names = append(names, a.Name)
		}
	}
	return names
}

// SupportedNative returns the comma-separated canonical name list.
func (r *Registry) SupportedNative() string {
	return strings.Join(r.NativeNames(), ",")
}

// SupportedList returns the comma-separated name list with aliases.
func (r *Registry) SupportedList() string {
	return strings.Join(r.Names(), ",")
}

// Allocate keys a new instance of the named cipher with raw key bytes. The
// key must be at least the descriptor's key length; only "none" accepts an
// empty key.
func (r *Registry) Allocate(name string, key []byte, forEncryption bool) (*Cipher, error) {
	return r.allocate(name, key, forEncryption, false, false)
}

// AllocateWithPassphrase expands passphrase into key material of the
// descriptor's key length, or MinimalKeyLength bytes for variable-length
// ciphers, and keys a new instance with it.
func (r *Registry) AllocateWithPassphrase(name string, passphrase []byte, forEncryption bool) (*Cipher, error) {
	return r.allocate(name, passphrase, forEncryption, true, false)
}

// AllocateAndTestWeakKeys is Allocate using the descriptor's weak-key
// checking initializer. A rejected key yields ErrOperationFailed.
func (r *Registry) AllocateAndTestWeakKeys(name string, key []byte, forEncryption bool) (*Cipher, error) {
	return r.allocate(name, key, forEncryption, false, true)
}

func (r *Registry) allocate(name string, key []byte, forEncryption, expand, checkWeakKeys bool) (*Cipher, error) {
	d, ok := r.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}

	material := key
	if expand {
		n := d.KeyLength
		if n == 0 {
			n = MinimalKeyLength
		}
		material = expandKey(key, n)
		defer zeroize(material)
	} else if len(key) < d.KeyLength || (len(key) == 0 && name != NoneName) {
		return nil, fmt.Errorf("%w: %s needs %d bytes, got %d", ErrKeyTooShort, d.Name, max(d.KeyLength, 1), len(key))
	}

	engine, err := d.initFunc(checkWeakKeys)(material, forEncryption)
	if err != nil {
		if errors.Is(err, ErrKeyTooShort) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrOperationFailed, d.Name, err)
	}
	return &Cipher{
		desc:          d,
		iv:            make([]byte, d.BlockLength),
		engine:        engine,
		forEncryption: forEncryption,
	}, nil
}
