package plugin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	extism "github.com/extism/go-sdk"

	"github.com/joncooperworks/sshcrypt/config"
	"github.com/joncooperworks/sshcrypt/crypto/ciphers"
)

// Exports a WASM cipher module must provide.
const (
	initFunction      = "cipher_init"
	transformFunction = "cipher_transform"
)

func init() {
	RegisterLoader("wasm", func(logger *slog.Logger) (Loader, error) {
		return NewWASMLoader(logger)
	})
}

// instance is the part of an Extism plugin a cipher engine drives.
type instance interface {
	Call(name string, data []byte) (uint32, []byte, error)
	Close(ctx context.Context) error
}

// WASMLoader loads cipher engines from WASM modules using the Extism SDK.
//
// A module exports cipher_init, which receives the key as input and reads
// the "for_encryption" config value ("true" or "false"), and
// cipher_transform, which receives iv || data and returns iv' || data' of
// the same length.
type WASMLoader struct {
	logger *slog.Logger
}

// NewWASMLoader creates a new WASM loader.
func NewWASMLoader(logger *slog.Logger) (*WASMLoader, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &WASMLoader{logger: logger}, nil
}

// Load compiles the module once to check its exports and returns a
// descriptor whose engines each run a fresh instance of it.
func (wl *WASMLoader) Load(ctx context.Context, data []byte, spec config.Plugin) (ciphers.Descriptor, error) {
	if len(data) == 0 {
		return ciphers.Descriptor{}, fmt.Errorf("plugin %s: empty WASM module", spec.Name)
	}
	ctx = context.WithoutCancel(ctx)

	probe, err := newExtismPlugin(ctx, data, true)
	if err != nil {
		return ciphers.Descriptor{}, fmt.Errorf("plugin %s: %w", spec.Name, err)
	}
	for _, name := range []string{initFunction, transformFunction} {
		if !probe.FunctionExists(name) {
			_ = probe.Close(ctx)
			return ciphers.Descriptor{}, fmt.Errorf("plugin %s: missing export %s", spec.Name, name)
		}
	}
	if err := probe.Close(ctx); err != nil {
		return ciphers.Descriptor{}, fmt.Errorf("failed to close Extism plugin: %w", err)
	}

	wl.logger.Debug("loaded WASM cipher plugin",
		"name", spec.Name,
		"path", spec.Path,
		"size", len(data),
		"block_length", spec.BlockLength,
		"key_length", spec.KeyLength,
	)

	return ciphers.Descriptor{
		Name:        spec.Name,
		BlockLength: spec.BlockLength,
		KeyLength:   spec.KeyLength,
		Init: func(key []byte, forEncryption bool) (ciphers.Engine, error) {
			p, err := newExtismPlugin(ctx, data, forEncryption)
			if err != nil {
				return nil, err
			}
			return startEngine(ctx, spec.Name, p, key)
		},
	}, nil
}

func newExtismPlugin(ctx context.Context, data []byte, forEncryption bool) (*extism.Plugin, error) {
	manifest := extism.Manifest{
		Wasm: []extism.Wasm{
			extism.WasmData{Data: data},
		},
		Config: map[string]string{
			"for_encryption": strconv.FormatBool(forEncryption),
		},
	}
	p, err := extism.NewPlugin(ctx, manifest, extism.PluginConfig{EnableWasi: true}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Extism plugin: %w", err)
	}
	return p, nil
}

// wasmEngine adapts one plugin instance to ciphers.Engine.
type wasmEngine struct {
	name string
	inst instance
	ctx  context.Context
}

// startEngine keys inst by calling cipher_init. inst is closed on failure.
func startEngine(ctx context.Context, name string, inst instance, key []byte) (*wasmEngine, error) {
	exitCode, _, err := inst.Call(initFunction, key)
	if err == nil && exitCode != 0 {
		err = fmt.Errorf("%s returned non-zero exit code: %d", initFunction, exitCode)
	}
	if err != nil {
		_ = inst.Close(ctx)
		return nil, fmt.Errorf("plugin %s: %w", name, err)
	}
	return &wasmEngine{name: name, inst: inst, ctx: ctx}, nil
}

func (e *wasmEngine) Transform(dst, src, iv []byte) error {
	if e.inst == nil {
		return errors.New("plugin instance is closed")
	}
	input := make([]byte, 0, len(iv)+len(src))
	input = append(input, iv...)
	input = append(input, src...)

	exitCode, output, err := e.inst.Call(transformFunction, input)
	if err != nil {
		return fmt.Errorf("failed to execute WASM function: %w", err)
	}
	if exitCode != 0 {
		return fmt.Errorf("%s returned non-zero exit code: %d", transformFunction, exitCode)
	}
	if len(output) != len(input) {
		return fmt.Errorf("%s returned %d bytes, want %d", transformFunction, len(output), len(input))
	}
	copy(iv, output[:len(iv)])
	copy(dst, output[len(iv):])
	return nil
}

// Reset shuts down the plugin instance. Key material lives in the instance's
// memory and goes with it.
func (e *wasmEngine) Reset() {
	if e.inst == nil {
		return
	}
	_ = e.inst.Close(e.ctx)
	e.inst = nil
}
