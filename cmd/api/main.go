package main

import (
	"flag"
	"log"

	"github.com/habitloop-io/habitloop/internal/api"
	"github.com/habitloop-io/habitloop/internal/config"
	"github.com/habitloop-io/habitloop/internal/database"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	log.Printf("Starting HabitLoop API v%s with config: %s", version, *configPath)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	store, err := database.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	apiServer, err := api.NewApi(*cfg, store)
	if err != nil {
		log.Fatal(err)
	}

	apiServer.Serve()
}
