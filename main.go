package main

import (
	"flag"
	"log"

	"github.com/Ludvin7x/lemon-api/configs"
	"github.com/Ludvin7x/lemon-api/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	seed := flag.Bool("seed", false, "seed groups, demo users and menu fixtures, then exit")
	flag.Parse()

	cfg := configs.LoadConfig()

	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()

	// Seeding is a deliberate operator command, never a startup side effect.
	if *seed {
		if err := configs.Seed(); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		return
	}

	r := gin.Default()
	routes.RegisterRoutes(r, cfg)

	log.Println("listening on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
