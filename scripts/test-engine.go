package main

import (
	"context"
	"fmt"
	"log"

	"github.com/recapio/recapio/internal/config"
	"github.com/recapio/recapio/internal/platform"
	"github.com/recapio/recapio/internal/services/dubbing"
)

func main() {
	fmt.Println("Dubbing Engine Test")
	fmt.Println("===================")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Printf("Engine base URL: %s\n", cfg.Engine.BaseURL)
	fmt.Println()

	// Create engine client
	client := dubbing.NewHTTPClient(&cfg.Engine)

	// Fetch capabilities
	fmt.Println("Fetching engine capabilities...")
	caps, err := client.Capabilities(context.Background())
	if err != nil {
		log.Fatalf("Capabilities request failed: %v", err)
	}

	fmt.Println("Connection successful!")
	fmt.Printf("Languages: %v\n", caps.Languages)
	fmt.Printf("Voices: %v\n", caps.Voices)
	fmt.Printf("Max duration: %ds\n", caps.MaxDurationSeconds)

	// Sanity-check URL detection
	fmt.Println("\nTesting URL detection...")
	d := platform.Detect("https://youtube.com/shorts/dQw4w9WgXcQ")
	if d.Platform != platform.PlatformYouTube {
		fmt.Printf("Detection test failed: got %s\n", d.Platform)
	} else {
		fmt.Printf("Detection test successful! (%s / %s)\n", d.Platform, d.VideoID)
	}
}
