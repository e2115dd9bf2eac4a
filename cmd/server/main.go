package main

import (
	"log"

	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/config"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/database"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/routes"
)

func main() {
	cfg := config.Load()

	db := database.Init(cfg.Database.Driver, cfg.Database.DSN)
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("closing database: %v", err)
		}
	}()

	router := routes.SetupRoutes(db.DB, cfg)

	log.Printf("server running on port %s", cfg.Server.Port)
	log.Fatal(router.Run(":" + cfg.Server.Port))
}
