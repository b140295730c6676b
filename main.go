package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/zaidanav/tucil2-if4020-audio-steganography/handlers"
)

func main() {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	config.ExposeHeaders = []string{
		"X-Stego-PSNR", "X-Stego-Method", "X-Stego-Capacity", "X-Stego-Message",
		"X-Stego-Encrypted", "X-Stego-Randomized", "X-Stego-LSB-Bits",
		"Content-Disposition",
	}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	stegoHandler := handlers.NewStegoHandler()

	// API Routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		stego := api.Group("/stego")
		{
			stego.POST("/insert", stegoHandler.InsertMessage)
			stego.POST("/extract", stegoHandler.ExtractMessage)
			stego.POST("/analyze", stegoHandler.AnalyzeAudio)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("API endpoints:")
	log.Printf("  POST /api/v1/stego/insert  - Hide a secret file in an MP3/WAV cover (returns stego WAV)")
	log.Printf("  POST /api/v1/stego/extract - Recover the secret file from a stego WAV (key only)")
	log.Printf("  POST /api/v1/stego/analyze - Cover metadata, capacity and feasibility report")
	log.Printf("  GET  /api/v1/health        - Health check")
	log.Printf("")
	log.Printf("Features:")
	log.Printf("  • LSB steganography on PCM samples (1-4 bits per sample)")
	log.Printf("  • Extended Vigenère-256 encryption of header and payload")
	log.Printf("  • Key-seeded randomized sample schedule")
	log.Printf("  • Parameter auto-detection on extraction (key only)")
	log.Printf("  • PSNR quality report in the X-Stego-PSNR header")
	log.Printf("  • Lossless WAV output, direct streaming (no disk storage)")

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
