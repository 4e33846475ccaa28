// Command seed populates reference data: the planet registry and an initial
// administrator account. It is idempotent; existing rows are left untouched.
//
// Flags:
//
//	--admin-email     email for the initial admin (default: admin@interpolice.gov)
//	--admin-password  password for the initial admin (required to create the admin)
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var planets = []struct {
	name string
	code string
}{
	{"Earth", "EARTH"},
	{"Mars", "MARS"},
	{"Venus", "VENUS"},
	{"Titan", "TITAN"},
	{"Europa", "EUROPA"},
	{"Kepler-442b", "KEPLER"},
}

func main() {
	adminEmail := flag.String("admin-email", "admin@interpolice.gov", "email for the initial admin")
	adminPassword := flag.String("admin-password", "", "password for the initial admin")
	flag.Parse()

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	seeded := 0
	for _, p := range planets {
		tag, err := pool.Exec(ctx,
			`INSERT INTO planets (id, name, code) VALUES ($1, $2, $3)
			 ON CONFLICT (code) DO NOTHING`,
			uuid.New(), p.name, p.code,
		)
		if err != nil {
			log.Fatalf("seed planet %s: %v", p.code, err)
		}
		seeded += int(tag.RowsAffected())
	}
	log.Printf("planets: %d inserted, %d already present", seeded, len(planets)-seeded)

	if *adminPassword == "" {
		log.Println("no --admin-password given, skipping admin creation")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}

	now := time.Now().UTC()
	tag, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, username, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, 'ADMIN', $5, $5)
		 ON CONFLICT (email) DO NOTHING`,
		uuid.New(), *adminEmail, string(hash), "admin", now,
	)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	if tag.RowsAffected() == 0 {
		log.Printf("admin %s already exists, password unchanged", *adminEmail)
	} else {
		log.Printf("admin %s created", *adminEmail)
	}
}
