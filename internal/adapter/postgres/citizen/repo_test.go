package citizen_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/interpolice/interpolice-backend/internal/adapter/postgres"
	"github.com/interpolice/interpolice-backend/internal/adapter/postgres/citizen"
	"github.com/interpolice/interpolice-backend/internal/adapter/postgres/testhelper"
	"github.com/interpolice/interpolice-backend/internal/domain"
)

func newRepo(t *testing.T) (*citizen.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return citizen.New(pool), pool
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	planet := testhelper.SeedPlanet(t, pool)

	got, err := repo.Create(ctx, &domain.Citizen{
		ID:                uuid.New(),
		Name:              "Zorg Blarkon",
		Status:            domain.CitizenStatusAlive,
		OriginPlanetID:    planet.ID,
		ResidencePlanetID: planet.ID,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.Name != "Zorg Blarkon" {
		t.Errorf("Name mismatch: got %q", got.Name)
	}
	if got.Status != domain.CitizenStatusAlive {
		t.Errorf("Status mismatch: got %s", got.Status)
	}
	if got.AvatarURL != nil {
		t.Errorf("AvatarURL should start nil, got %v", got.AvatarURL)
	}
}

func TestRepo_Create_UnknownPlanet(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.Create(context.Background(), &domain.Citizen{
		ID:                uuid.New(),
		Name:              "Nobody",
		Status:            domain.CitizenStatusAlive,
		OriginPlanetID:    uuid.New(),
		ResidencePlanetID: uuid.New(),
	})
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Exists(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	planet := testhelper.SeedPlanet(t, pool)
	seeded := testhelper.SeedCitizen(t, pool, planet.ID)

	ok, err := repo.Exists(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Error("expected seeded citizen to exist")
	}

	ok, err = repo.Exists(ctx, uuid.New())
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("random UUID should not exist")
	}
}

func TestRepo_Lock_InsideTx(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	planet := testhelper.SeedPlanet(t, pool)
	seeded := testhelper.SeedCitizen(t, pool, planet.ID)
	tm := postgres.NewTxManager(pool)

	err := tm.RunInTx(ctx, func(txCtx context.Context) error {
		return repo.Lock(txCtx, seeded.ID)
	})
	if err != nil {
		t.Fatalf("Lock inside tx: %v", err)
	}
}

func TestRepo_Lock_UnknownCitizen(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	tm := postgres.NewTxManager(pool)

	err := tm.RunInTx(context.Background(), func(txCtx context.Context) error {
		return repo.Lock(txCtx, uuid.New())
	})
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Update(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	planet := testhelper.SeedPlanet(t, pool)
	seeded := testhelper.SeedCitizen(t, pool, planet.ID)

	seeded.Name = "Renamed Citizen"
	seeded.Status = domain.CitizenStatusFrozen

	updated, err := repo.Update(ctx, &seeded)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Renamed Citizen" {
		t.Errorf("Name mismatch: got %q", updated.Name)
	}
	if updated.Status != domain.CitizenStatusFrozen {
		t.Errorf("Status mismatch: got %s", updated.Status)
	}
}

func TestRepo_SetAvatarURL(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	planet := testhelper.SeedPlanet(t, pool)
	seeded := testhelper.SeedCitizen(t, pool, planet.ID)

	updated, err := repo.SetAvatarURL(ctx, seeded.ID, "/uploads/"+seeded.ID.String()+".png")
	if err != nil {
		t.Fatalf("SetAvatarURL: %v", err)
	}
	if updated.AvatarURL == nil || *updated.AvatarURL == "" {
		t.Error("AvatarURL should be set")
	}
}

func TestRepo_Delete_CascadesCitations(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	planet := testhelper.SeedPlanet(t, pool)
	seeded := testhelper.SeedCitizen(t, pool, planet.ID)
	citation := testhelper.SeedCitation(t, pool, seeded.ID, domain.Credits(40000))

	if err := repo.Delete(ctx, seeded.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int
	err := pool.QueryRow(ctx, `SELECT count(*) FROM citations WHERE id = $1`, citation.ID).Scan(&count)
	if err != nil {
		t.Fatalf("count citations: %v", err)
	}
	if count != 0 {
		t.Errorf("citations should cascade on citizen delete, found %d", count)
	}
}

func TestRepo_Search_ByNameAndStatus(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	planet := testhelper.SeedPlanet(t, pool)

	marker := "needle-" + uuid.New().String()[:8]
	alive, err := repo.Create(ctx, &domain.Citizen{
		ID:                uuid.New(),
		Name:              "Citizen " + marker,
		Status:            domain.CitizenStatusAlive,
		OriginPlanetID:    planet.ID,
		ResidencePlanetID: planet.ID,
	})
	if err != nil {
		t.Fatalf("Create alive: %v", err)
	}

	_, err = repo.Create(ctx, &domain.Citizen{
		ID:                uuid.New(),
		Name:              "Frozen " + marker,
		Status:            domain.CitizenStatusFrozen,
		OriginPlanetID:    planet.ID,
		ResidencePlanetID: planet.ID,
	})
	if err != nil {
		t.Fatalf("Create frozen: %v", err)
	}

	// Name filter alone matches both.
	citizens, total, err := repo.Search(ctx, citizen.Filter{Search: marker})
	if err != nil {
		t.Fatalf("Search by name: %v", err)
	}
	if total != 2 {
		t.Errorf("total mismatch: got %d, want 2", total)
	}
	if len(citizens) != 2 {
		t.Errorf("len mismatch: got %d, want 2", len(citizens))
	}

	// Adding status narrows to one.
	status := domain.CitizenStatusAlive
	citizens, total, err = repo.Search(ctx, citizen.Filter{Search: marker, Status: &status})
	if err != nil {
		t.Fatalf("Search by name+status: %v", err)
	}
	if total != 1 {
		t.Errorf("total mismatch: got %d, want 1", total)
	}
	if len(citizens) != 1 || citizens[0].ID != alive.ID {
		t.Errorf("expected only the alive citizen, got %d rows", len(citizens))
	}
}

func TestRepo_Search_ByPlanet(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	home := testhelper.SeedPlanet(t, pool)
	away := testhelper.SeedPlanet(t, pool)
	seeded := testhelper.SeedCitizen(t, pool, home.ID)
	testhelper.SeedCitizen(t, pool, away.ID)

	citizens, _, err := repo.Search(ctx, citizen.Filter{PlanetID: &home.ID})
	if err != nil {
		t.Fatalf("Search by planet: %v", err)
	}

	found := false
	for _, c := range citizens {
		if c.ID == seeded.ID {
			found = true
		}
		if c.OriginPlanetID != home.ID && c.ResidencePlanetID != home.ID {
			t.Errorf("citizen %s does not belong to planet %s", c.ID, home.ID)
		}
	}
	if !found {
		t.Error("seeded citizen should match its planet filter")
	}
}

func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got: %v", target, err)
	}
}
