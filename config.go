package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"simonwaldherr.de/go/fibio/fib"
)

// Route maps a URL path to a Fibonacci instrument. A route with a
// WasmFile runs the compiled guest under wazero; otherwise the term is
// computed natively with the 128-bit core, using the route's overflow
// policy ("wrap" or "fail", default "wrap").
type Route struct {
	Path     string `json:"path"`
	WasmFile string `json:"wasm_file,omitempty"`
	Policy   string `json:"policy,omitempty"`
	Cache    bool   `json:"cache"`
	TTL      int    `json:"ttl,omitempty"`
}

// Config represents the server configuration, including routes and
// caching settings. It is safe for concurrent use; the watcher reloads
// it in place while the server reads it.
type Config struct {
	Port      string           `json:"port"`
	Routes    map[string]Route `json:"routes"`
	CacheTTL  int              `json:"cache_ttl"`
	CacheSize int              `json:"cache_size"`
	mu        sync.RWMutex
}

// NewConfig creates an empty Config instance.
func NewConfig() *Config {
	return &Config{Routes: make(map[string]Route)}
}

// ParseConfig reads a JSON configuration file and replaces the current
// settings. On any error the previous settings are kept.
func (c *Config) ParseConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}

	var parsed Config
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file: %v", err)
	}
	for path, route := range parsed.Routes {
		if route.WasmFile != "" {
			continue
		}
		if _, err := fib.ParsePolicy(route.Policy); err != nil {
			return fmt.Errorf("route %s: %v", path, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.Port = parsed.Port
	c.Routes = parsed.Routes
	c.CacheTTL = parsed.CacheTTL
	c.CacheSize = parsed.CacheSize
	return nil
}

// GetRoutes returns a copy of the routes.
func (c *Config) GetRoutes() map[string]Route {
	c.mu.RLock()
	defer c.mu.RUnlock()
	routesCopy := make(map[string]Route, len(c.Routes))
	for k, v := range c.Routes {
		routesCopy[k] = v
	}
	return routesCopy
}

// GetPort returns the configured listen port.
func (c *Config) GetPort() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Port
}

// GetCacheTTL returns the default response cache TTL in seconds.
func (c *Config) GetCacheTTL() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.CacheTTL
}

// GetCacheSize returns the initial response cache capacity.
func (c *Config) GetCacheSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.CacheSize
}

// ToJSON returns the JSON representation of the config.
func (c *Config) ToJSON() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return json.MarshalIndent(c, "", "  ")
}
