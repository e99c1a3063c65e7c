// @title GuruSchool API
// @version 1.0
// @description Backend for the GuruSchool course marketplace.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"guruschool_backend/internal/app"
	"guruschool_backend/internal/config"
	"guruschool_backend/pkg/database"
	"guruschool_backend/pkg/logger"
	"log"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *migrateOnly {
		logger.InitLogger(cfg)
		if _, err := database.InitDB(&cfg.Database); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Database migration complete")
		return
	}

	application := app.NewApp(cfg, *configDir+"/config.yaml")
	defer logger.Log.Sync()

	application.Run()
}
