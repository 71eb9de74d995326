package main

import (
	"log"

	"github.com/Madhesh247/Zenfocus/internal/config"
	"github.com/Madhesh247/Zenfocus/internal/db"
)

func main() {
	cfg := config.Load()
	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	log.Println("migrations applied successfully")
}
