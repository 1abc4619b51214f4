package main

import (
	"log"

	"github.com/fsnotify/fsnotify"
)

// WatchConfigFile reloads the configuration whenever the file is
// written. Reload errors keep the previous configuration.
func WatchConfigFile(configFile string, config *Config) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("Config watcher unavailable: %v", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(configFile); err != nil {
		log.Printf("Failed to watch %s: %v", configFile, err)
		return
	}

	for {
		select {
		case event := <-watcher.Events:
			if event.Op&fsnotify.Write == fsnotify.Write {
				log.Println("Config file changed. Reloading...")
				if err := config.ParseConfig(configFile); err != nil {
					log.Printf("Failed to reload config: %v", err)
				}
			}
		case err := <-watcher.Errors:
			log.Printf("Config watcher error: %v", err)
		}
	}
}
