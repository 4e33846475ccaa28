package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/interpolice/interpolice-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedPlanet creates a planet reference row and returns it.
func SeedPlanet(t *testing.T, pool *pgxpool.Pool) domain.Planet {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	planet := domain.Planet{
		ID:        uuid.New(),
		Name:      "Planet " + suffix,
		Code:      "PL-" + suffix,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO planets (id, name, code, created_at) VALUES ($1, $2, $3, $4)`,
		planet.ID, planet.Name, planet.Code, planet.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPlanet insert: %v", err)
	}

	return planet
}

// SeedUser creates an officer user and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "officer-" + suffix + "@interpolice.gov",
		Username:     "officer-" + suffix,
		PasswordHash: "$2a$10$" + suffix, // not a real hash, repos never verify it
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, username, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.PasswordHash, user.Username, string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedCitizen creates a citizen living on the given planet and returns it.
func SeedCitizen(t *testing.T, pool *pgxpool.Pool, planetID uuid.UUID) domain.Citizen {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	citizen := domain.Citizen{
		ID:                uuid.New(),
		Name:              "Citizen " + suffix,
		Status:            domain.CitizenStatusAlive,
		OriginPlanetID:    planetID,
		ResidencePlanetID: planetID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO citizens (id, name, status, origin_planet_id, residence_planet_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		citizen.ID, citizen.Name, string(citizen.Status), citizen.OriginPlanetID, citizen.ResidencePlanetID,
		citizen.CreatedAt, citizen.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCitizen insert: %v", err)
	}

	return citizen
}

// SeedCitation inserts a citation for the given citizen and returns it.
func SeedCitation(t *testing.T, pool *pgxpool.Pool, citizenID uuid.UUID, fine domain.Credits) domain.Citation {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	citation := domain.Citation{
		ID:          uuid.New(),
		CitizenID:   citizenID,
		Description: "seeded infraction " + uniqueSuffix(),
		FineAmount:  fine,
		IssuedAt:    now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO citations (id, citizen_id, description, fine_amount_cents, issued_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		citation.ID, citation.CitizenID, citation.Description, int64(citation.FineAmount),
		citation.IssuedAt, citation.CreatedAt, citation.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCitation insert: %v", err)
	}

	return citation
}
