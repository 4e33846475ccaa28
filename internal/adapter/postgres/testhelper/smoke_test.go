package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	planet := SeedPlanet(t, pool)
	citizen := SeedCitizen(t, pool, planet.ID)

	var name string
	err := pool.QueryRow(
		context.Background(),
		`SELECT name FROM citizens WHERE id = $1`,
		citizen.ID,
	).Scan(&name)
	if err != nil {
		t.Fatalf("expected citizen in DB, got error: %v", err)
	}

	if name != citizen.Name {
		t.Fatalf("expected name %q, got %q", citizen.Name, name)
	}
}
