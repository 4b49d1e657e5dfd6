package main

import (
	"log"

	"DocRegistry/config"
	"DocRegistry/models"
)

func main() {
	config.LoadEnv()
	if err := config.ValidateDatabaseConfig(); err != nil {
		log.Fatalf("database configuration: %v", err)
	}

	db, err := config.ConnectDB(config.LoadDatabaseConfig())
	if err != nil {
		log.Fatalf("connect: %v", err)
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("✅ Migration completed")
}
