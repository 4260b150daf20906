package ciphers

var defaultRegistry = mustDefault()

func mustDefault() *Registry {
	r, err := NewRegistry(Builtin(), BuiltinAliases())
	if err != nil {
		panic("ciphers: invalid builtin table: " + err.Error())
	}
	return r
}

// Default returns the registry of builtin ciphers.
func Default() *Registry { return defaultRegistry }

// Lookup resolves name in the default registry.
func Lookup(name string) (Descriptor, bool) { return defaultRegistry.Descriptor(name) }

// NativeName resolves name to its canonical form in the default registry.
func NativeName(name string) (string, bool) { return defaultRegistry.NativeName(name) }

// Supported reports whether the default registry knows name.
func Supported(name string) bool { return defaultRegistry.Supported(name) }

// KeyLength returns the key length of name in the default registry.
func KeyLength(name string) (int, error) { return defaultRegistry.KeyLength(name) }

// SupportedNative returns the default registry's canonical names, comma
// separated.
func SupportedNative() string { return defaultRegistry.SupportedNative() }

// SupportedList returns the default registry's names with aliases, comma
// separated.
func SupportedList() string { return defaultRegistry.SupportedList() }

// Allocate keys a cipher from the default registry.
func Allocate(name string, key []byte, forEncryption bool) (*Cipher, error) {
	return defaultRegistry.Allocate(name, key, forEncryption)
}

// AllocateWithPassphrase keys a cipher from the default registry with an
// expanded passphrase.
func AllocateWithPassphrase(name string, passphrase []byte, forEncryption bool) (*Cipher, error) {
	return defaultRegistry.AllocateWithPassphrase(name, passphrase, forEncryption)
}

// AllocateAndTestWeakKeys keys a cipher from the default registry and
// rejects weak keys.
func AllocateAndTestWeakKeys(name string, key []byte, forEncryption bool) (*Cipher, error) {
	return defaultRegistry.AllocateAndTestWeakKeys(name, key, forEncryption)
}
