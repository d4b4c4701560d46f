package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/wanderlist/api-go/cache"
	"github.com/wanderlist/api-go/config"
	"github.com/wanderlist/api-go/routes"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	db := config.InitDB()

	// Initialize the profile cache; nil disables caching
	var profileCache cache.Cache
	if client := config.InitRedis(); client != nil {
		profileCache = cache.NewRedisCache(client)
	}

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Initialize routes
	routes.SetupRoutes(r, db, profileCache)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
