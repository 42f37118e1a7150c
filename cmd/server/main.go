package main

import (
	"log"
	"net/http"
	"os"

	"github.com/Helton-Amalique/school-bus-app-api/internal/config"
	"github.com/Helton-Amalique/school-bus-app-api/internal/logger"
	"github.com/Helton-Amalique/school-bus-app-api/internal/middleware"
	"github.com/Helton-Amalique/school-bus-app-api/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router (recovery + request logging registered inside)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server running at :%s", port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, handler))
}
