package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"simonwaldherr.de/go/fibio/fib"
)

// Server routes HTTP requests to Fibonacci instruments and handles
// response caching.
type Server struct {
	config      *Config
	moduleCache *ModuleCache
	cache       *ResponseCache
}

func NewServer(config *Config, moduleCache *ModuleCache, cache *ResponseCache) *Server {
	return &Server{
		config:      config,
		moduleCache: moduleCache,
		cache:       cache,
	}
}

// ServeHTTP is the main entry point for handling HTTP requests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, exists := s.config.GetRoutes()[r.URL.Path]
	if !exists {
		http.Error(w, "404 - Not Found", http.StatusNotFound)
		return
	}
	s.handleRoute(w, r, route)
}

// handleRoute runs the instrument mapped to the route and caches the
// response when the route asks for it.
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request, route Route) {
	startTime := time.Now()

	n, err := indexParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cacheKey := r.URL.Path + "?" + r.URL.RawQuery
	if route.Cache {
		if cached, found := s.cache.GetCachedResponse(cacheKey); found {
			w.Write(cached)
			return
		}
	}

	output := &bytes.Buffer{}
	if route.WasmFile != "" {
		err = s.moduleCache.RunInstrument(route.WasmFile, n, output)
	} else {
		err = runNative(route, n, output)
	}
	if err != nil {
		if errors.Is(err, fib.ErrOverflow) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, fmt.Sprintf("Error running instrument: %v", err), http.StatusInternalServerError)
		return
	}

	response := output.Bytes()
	if route.Cache {
		ttl := s.config.GetCacheTTL()
		if route.TTL > 0 {
			ttl = route.TTL
		}
		s.cache.SetCachedResponse(cacheKey, response, ttl)
	}

	log.Printf("Route: %s | Index: %d | Duration: %v", route.Path, n, time.Since(startTime))
	w.Write(response)
}

// runNative computes the term in-process with the 128-bit core.
func runNative(route Route, n uint64, output io.Writer) error {
	policy, err := fib.ParsePolicy(route.Policy)
	if err != nil {
		return err
	}
	v, err := fib.Compute(n, policy)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, fib.FormatLine(n, v))
	return err
}

// indexParam extracts the Fibonacci index from the n query parameter.
func indexParam(r *http.Request) (uint64, error) {
	raw := r.URL.Query().Get("n")
	if raw == "" {
		return 0, fmt.Errorf("missing query parameter n")
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: must be a non-negative integer", raw)
	}
	return n, nil
}
