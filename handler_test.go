package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	config := NewConfig()
	config.CacheTTL = 60
	config.Routes = map[string]Route{
		"/fib":      {Path: "/fib", Policy: "fail", Cache: true},
		"/fib/wrap": {Path: "/fib/wrap", Policy: "wrap", Cache: false},
	}

	moduleCache := NewModuleCache()
	t.Cleanup(moduleCache.Close)
	return NewServer(config, moduleCache, NewResponseCache(4))
}

func doRequest(t *testing.T, server *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestServeHTTPNativeRoute(t *testing.T) {
	server := newTestServer(t)

	rec := doRequest(t, server, "/fib?n=100")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}
	if want := "Fib(100) = 354224848179261915075\n"; rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestServeHTTPUnknownRoute(t *testing.T) {
	server := newTestServer(t)

	if rec := doRequest(t, server, "/nope?n=1"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeHTTPBadIndex(t *testing.T) {
	server := newTestServer(t)

	for _, target := range []string{"/fib", "/fib?n=", "/fib?n=abc", "/fib?n=-1"} {
		if rec := doRequest(t, server, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", target, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestServeHTTPOverflowPolicies(t *testing.T) {
	server := newTestServer(t)

	rec := doRequest(t, server, "/fib?n=187")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("fail policy: status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rec.Body.String(), "F(187)") {
		t.Errorf("fail policy: body %q does not name the failing term", rec.Body.String())
	}

	rec = doRequest(t, server, "/fib/wrap?n=187")
	if rec.Code != http.StatusOK {
		t.Fatalf("wrap policy: status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}
	if want := "Fib(187) = 198239973509362327032045173661212819077\n"; rec.Body.String() != want {
		t.Errorf("wrap policy: body = %q, want %q", rec.Body.String(), want)
	}
}

func TestServeHTTPCachesResponses(t *testing.T) {
	server := newTestServer(t)

	first := doRequest(t, server, "/fib?n=90")
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", first.Code, http.StatusOK)
	}

	cached, found := server.cache.GetCachedResponse("/fib?n=90")
	if !found {
		t.Fatal("response was not cached for a cache-enabled route")
	}
	if string(cached) != first.Body.String() {
		t.Errorf("cached body = %q, want %q", cached, first.Body)
	}

	second := doRequest(t, server, "/fib?n=90")
	if second.Body.String() != first.Body.String() {
		t.Errorf("cached response differs: %q vs %q", second.Body, first.Body)
	}

	// Cache is off for the wrap route.
	doRequest(t, server, "/fib/wrap?n=90")
	if _, found := server.cache.GetCachedResponse("/fib/wrap?n=90"); found {
		t.Error("response cached for a cache-disabled route")
	}
}
