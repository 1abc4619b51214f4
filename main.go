package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"simonwaldherr.de/go/fibio/fib"
)

// defaultIndex is the term printed when fibio runs without arguments.
const defaultIndex = 100

func main() {
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		configFile := "config.json"
		if len(os.Args) > 2 {
			configFile = os.Args[2]
		}
		serve(configFile)
		return
	}

	// FailOnOverflow is an explicit choice; it can never trigger at
	// the default index since F(100) fits well within 128 bits.
	v, err := fib.Compute(defaultIndex, fib.FailOnOverflow)
	if err != nil {
		log.Fatalf("Error computing Fib(%d): %v", defaultIndex, err)
	}
	fmt.Println(fib.FormatLine(defaultIndex, v))
}

func serve(configFile string) {
	config := NewConfig()
	if err := config.ParseConfig(configFile); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	moduleCache := NewModuleCache()
	defer moduleCache.Close()
	responseCache := NewResponseCache(config.GetCacheSize())

	go WatchConfigFile(configFile, config)

	server := NewServer(config, moduleCache, responseCache)
	log.Printf("Starting fibio on port %s...", config.GetPort())
	if err := http.ListenAndServe(":"+config.GetPort(), server); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
