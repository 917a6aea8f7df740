package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"finbud/pkg/recommend"
)

var jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)

var recommender *recommend.Client

func main() {
	// Load ./.env if present before reading vars; existing env wins.
	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)

	// Support a lightweight migrate command: `./finbud migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		fmt.Println("migration and seeding completed")
		return
	}

	initDB()
	recommender = recommend.NewClient(predictorBaseURL())

	r := gin.Default()

	setupRoutes(r)

	r.Run(":8081")
}

// predictorBaseURL returns the prediction service base URL (PREDICTOR_URL env).
func predictorBaseURL() string {
	if v := os.Getenv("PREDICTOR_URL"); v != "" {
		return v
	}
	return "http://localhost:8000"
}
