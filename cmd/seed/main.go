package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/devconnector/devconnector-api/config"
	"github.com/devconnector/devconnector-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@devconnector.local"
	password := "password123"
	name := "Demo User"

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, name, helpers.GravatarURL(email)).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	var profileID string
	err = db.QueryRow(`
		INSERT INTO profiles (user_id, status, skills, bio)
		VALUES ($1, 'Developer', ARRAY['Go', 'PostgreSQL', 'Redis'], 'Seeded demo profile')
		ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
		RETURNING id
	`, userID).Scan(&profileID)
	if err != nil {
		log.Fatalf("failed to seed profile: %v", err)
	}
	fmt.Printf("seeded profile: id=%s\n", profileID)

	var postID string
	err = db.QueryRow(`
		INSERT INTO posts (user_id, text, name, avatar)
		SELECT id, 'Hello from the seed script', name, avatar_url FROM users WHERE id = $1
		RETURNING id
	`, userID).Scan(&postID)
	if err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	fmt.Printf("seeded post: id=%s\n", postID)
}
