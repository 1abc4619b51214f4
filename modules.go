package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"simonwaldherr.de/go/fibio/fib"
)

// ModuleCache manages cached compiled WASM instruments sharing one
// wazero runtime.
type ModuleCache struct {
	cache map[string]wazero.CompiledModule
	mu    sync.RWMutex
	rt    wazero.Runtime
}

// NewModuleCache initializes the module cache with a WASI-enabled
// runtime.
func NewModuleCache() *ModuleCache {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	return &ModuleCache{
		cache: make(map[string]wazero.CompiledModule),
		rt:    rt,
	}
}

// GetCompiledModule returns a cached compiled module or loads it if not
// present.
func (mc *ModuleCache) GetCompiledModule(wasmFile string) (wazero.CompiledModule, error) {
	mc.mu.RLock()
	compiledModule, found := mc.cache[wasmFile]
	mc.mu.RUnlock()
	if found {
		return compiledModule, nil
	}

	wasmBytes, err := os.ReadFile(wasmFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read WASM file: %v", err)
	}
	compiledModule, err = mc.rt.CompileModule(context.Background(), wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module: %v", err)
	}

	mc.mu.Lock()
	mc.cache[wasmFile] = compiledModule
	mc.mu.Unlock()
	return compiledModule, nil
}

// RunInstrument instantiates a guest and calls its exported fib
// function with the requested index, writing the formatted line to
// output. Guests compute in uint64 arithmetic and wrap for n > 93.
func (mc *ModuleCache) RunInstrument(wasmFile string, n uint64, output io.Writer) error {
	compiledModule, err := mc.GetCompiledModule(wasmFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	// Anonymous instance name so concurrent requests can instantiate
	// the same compiled module.
	moduleConfig := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions("_initialize")
	mod, err := mc.rt.InstantiateModule(ctx, compiledModule, moduleConfig)
	if err != nil {
		return fmt.Errorf("failed to instantiate module: %v", err)
	}
	defer mod.Close(ctx)

	fn := mod.ExportedFunction("fib")
	if fn == nil {
		return fmt.Errorf("no fib function exported by %s", wasmFile)
	}
	results, err := fn.Call(ctx, n)
	if err != nil {
		return fmt.Errorf("error calling fib: %v", err)
	}

	fmt.Fprintln(output, fib.FormatLine(n, fib.Uint128{Lo: results[0]}))
	return nil
}

// Close releases all cached compiled modules and the runtime.
func (mc *ModuleCache) Close() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	for _, compiledModule := range mc.cache {
		compiledModule.Close(context.Background())
	}
	mc.rt.Close(context.Background())
}
