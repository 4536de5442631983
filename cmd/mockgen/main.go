package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"staffplan/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "steady", "Scenario to generate: steady, pressure, slump")
	dbPath := flag.String("db", "./kds.db", "SQLite database to seed")
	months := flag.Int("months", 18, "Number of trend months per district")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Months:   *months,
		Seed:     *seed,
		Now:      time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (Months: %d, Seed: %d) into %s...\n", cfg.Scenario, cfg.Months, cfg.Seed, *dbPath)

	data := engine.Generate(cfg)

	if err := engine.Save(context.Background(), *dbPath, data); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
