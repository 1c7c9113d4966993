package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"lab-checkout/config"
	"lab-checkout/lab"
)

func main() {
	configPath := flag.String("config", config.ConfigPath, "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := config.InitLogger(cfg.LogLevel, cfg.LogFormat)

	// Clean up any existing database files
	fmt.Println("Cleaning up existing database files...")
	for _, file := range []string{cfg.DatabasePath, cfg.DatabasePath + "-shm", cfg.DatabasePath + "-wal"} {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: Could not remove %s: %v\n", file, err)
		}
	}

	rosterPath := cfg.RosterPath
	if flag.NArg() > 0 {
		rosterPath = flag.Arg(0)
	}
	roster, err := lab.LoadRosterFile(rosterPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading roster: %v\n", err)
		os.Exit(1)
	}

	db, err := lab.NewDatabase(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Printf("Importing %d students and %d assets from %s...\n", len(roster.Students), len(roster.Assets), rosterPath)
	if err := db.ImportRoster(roster); err != nil {
		logger.Error("roster import failed", "roster", rosterPath, "error", err)
		fmt.Fprintf(os.Stderr, "Error importing roster: %v\n", err)
		os.Exit(1)
	}

	assets, err := db.GetAllAssets()
	if err != nil {
		fmt.Printf("Error retrieving assets: %v\n", err)
		return
	}
	fmt.Printf("\nImport complete!\n")
	fmt.Printf("%-10s %-40s %s\n", "ID", "Name", "Security")
	fmt.Println(strings.Repeat("-", 60))
	for _, a := range assets {
		fmt.Printf("%-10s %-40s %d\n", a.ID, a.Name, a.Security)
	}
}
