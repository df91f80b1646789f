// Command main runs the database seeder for Forkful.
package main

import (
	"context"
	"flag"
	"log"

	"forkful/internal/config"
	"forkful/internal/database"
	"forkful/internal/seed"
)

func main() {
	// Parse command line flags
	numComments := flag.Int("comments", 15, "Number of comments to create")
	fixtures := flag.Bool("fixtures", false, "Seed baseline users, categories and restaurants first")
	revert := flag.Bool("revert", false, "Delete all seeded comments instead of creating them")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.New(db)
	ctx := context.Background()

	if *revert {
		if err := s.Revert(ctx); err != nil {
			log.Fatalf("Revert failed: %v", err)
		}
		log.Println("All comments deleted.")
		return
	}

	if *fixtures {
		if err := s.Fixtures(ctx); err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
		log.Println("Baseline users, categories and restaurants seeded.")
	}

	if err := s.Comments(ctx, *numComments); err != nil {
		log.Fatalf("Comment seeding failed: %v", err)
	}

	log.Printf("Seeded %d comments.", *numComments)
	log.Printf("All seeded users have the password: 12345678")
}
