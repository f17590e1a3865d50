// Command mcproxy runs the proxy headlessly, reading its bootstrap
// settings and preference seed from a YAML file instead of the GUI this
// module's core logic was built to sit behind.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mcproxy/core/config"
	"github.com/mcproxy/core/forwarder"
	"github.com/mcproxy/core/prefs"
)

func main() {
	configPath := flag.String("config", "server.yaml", "path to the bootstrap YAML config")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("mcproxy (1.15.2 protocol)")
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("mcproxy: %v", err)
	}

	store, err := prefs.Load(cfg.PrefsFile)
	if err != nil {
		log.Fatalf("mcproxy: %v", err)
	}
	seed := store.All()
	for name, value := range cfg.Seed {
		seed[name] = value
		if err := store.Set(name, value); err != nil {
			log.Fatalf("mcproxy: %v", err)
		}
	}

	logger := log.New(os.Stdout, "[mcproxy] ", log.LstdFlags)

	sup := &forwarder.Supervisor{
		ListenAddr:      cfg.ListenAddr,
		ServerAddr:      cfg.ServerAddr,
		Logger:          logger,
		Debug:           cfg.Debug,
		SeedPreferences: seed,
	}
	if err := sup.Run(); err != nil {
		logger.Fatalf("%v", err)
	}
}
