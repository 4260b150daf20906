package plugin

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// LoaderFactory creates a Loader that logs through logger.
//
// Factories are registered with RegisterLoader and called once per plugin
// of that type.
type LoaderFactory func(logger *slog.Logger) (Loader, error)

var (
	// loaderRegistry stores loader factories by plugin type identifier
	loaderRegistry   = make(map[string]LoaderFactory)
	loaderRegistryMu sync.RWMutex
)

// RegisterLoader registers a loader factory for a plugin type identifier such
// as "wasm". It should be called from init functions of loader
// implementations.
func RegisterLoader(typeIdentifier string, factory LoaderFactory) {
	loaderRegistryMu.Lock()
	defer loaderRegistryMu.Unlock()
	loaderRegistry[typeIdentifier] = factory
}

// GetLoaderFactory retrieves the loader factory for a plugin type identifier.
func GetLoaderFactory(typeIdentifier string) (LoaderFactory, error) {
	loaderRegistryMu.RLock()
	defer loaderRegistryMu.RUnlock()
	factory, ok := loaderRegistry[typeIdentifier]
	if !ok {
		return nil, fmt.Errorf("no loader factory registered for plugin type: %s", typeIdentifier)
	}
	return factory, nil
}

// ListRegisteredPluginTypes returns all registered plugin type identifiers,
// sorted.
func ListRegisteredPluginTypes() []string {
	loaderRegistryMu.RLock()
	defer loaderRegistryMu.RUnlock()
	types := make([]string, 0, len(loaderRegistry))
	for typeIdentifier := range loaderRegistry {
		types = append(types, typeIdentifier)
	}
	sort.Strings(types)
	return types
}
