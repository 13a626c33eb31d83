package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("adding sample profiles into database...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DATABASE_URL")

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO profiles (id, name, email, headline, skills, projects, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO NOTHING
	`

	seeds := []struct {
		name     string
		email    string
		headline string
		skills   string
		projects string
		bio      string
	}{
		{
			name:     "Ada Lovelace",
			email:    "ada@example.com",
			headline: "Analyst and programmer",
			skills:   `["mathematics", "systems"]`,
			projects: `[{"title": "Analytical Engine Notes", "description": "Translation and commentary", "links": {"archive": "https://example.com/notes"}}]`,
			bio:      "Wrote the first published algorithm.",
		},
		{
			name:     "Grace Hopper",
			email:    "grace@example.com",
			headline: "Compiler pioneer",
			skills:   `["cobol", "compilers"]`,
			projects: `[{"title": "A-0 System", "description": "First compiler", "links": {}}]`,
			bio:      "Built the first compiler and coined the term debugging.",
		},
	}

	for _, s := range seeds {
		_, err = pool.Exec(context.Background(), query,
			uuid.New(), s.name, s.email, s.headline, s.skills, s.projects, s.bio)
		if err != nil {
			log.Fatalf("cannot add profile '%s': %v", s.email, err)
		}
		fmt.Printf("added profile '%s'\n", s.email)
	}
}
