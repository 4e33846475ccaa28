package citation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpolice/interpolice-backend/internal/adapter/postgres"
	pgcitation "github.com/interpolice/interpolice-backend/internal/adapter/postgres/citation"
	pgcitizen "github.com/interpolice/interpolice-backend/internal/adapter/postgres/citizen"
	pgrecord "github.com/interpolice/interpolice-backend/internal/adapter/postgres/criminalrecord"
	"github.com/interpolice/interpolice-backend/internal/adapter/postgres/testhelper"
	"github.com/interpolice/interpolice-backend/internal/domain"
	"github.com/interpolice/interpolice-backend/pkg/ctxutil"
)

var errRecordStoreDown = errors.New("record store down")

// failingRecordRepo rejects every insert, standing in for a criminal-record
// write that dies mid-transaction.
type failingRecordRepo struct{}

func (failingRecordRepo) Create(ctx context.Context, rec *domain.CriminalRecord) (*domain.CriminalRecord, error) {
	return nil, errRecordStoreDown
}

// A failed criminal-record insert on an escalating citation must roll back
// the citation insert too: afterwards the citizen's citation count is
// exactly what it was before the call.
func TestService_FileCitation_RecordFailureLeavesCountUnchanged(t *testing.T) {
	t.Parallel()

	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()

	planet := testhelper.SeedPlanet(t, pool)
	citizen := testhelper.SeedCitizen(t, pool, planet.ID)
	officer := testhelper.SeedUser(t, pool, domain.RoleOfficer)

	// Two prior citations: the next filing is the third and escalates.
	testhelper.SeedCitation(t, pool, citizen.ID, domain.Credits(40000))
	testhelper.SeedCitation(t, pool, citizen.ID, domain.Credits(40000))

	citizens := pgcitizen.New(pool)
	citations := pgcitation.New(pool)
	tm := postgres.NewTxManager(pool)

	svc := newTestService(citizens, citations, failingRecordRepo{}, tm)

	officerCtx := ctxutil.WithUser(ctx, officer.ID, domain.RoleOfficer)
	result, err := svc.FileCitation(officerCtx, FileCitationInput{
		CitizenID:   citizen.ID,
		Description: "third strike",
	})

	require.ErrorIs(t, err, errRecordStoreDown)
	assert.Nil(t, result)

	count, err := citations.CountByCitizen(ctx, citizen.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "citation insert should have rolled back")

	var recordCount int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT count(*) FROM criminal_records WHERE citizen_id = $1`, citizen.ID,
	).Scan(&recordCount))
	assert.Equal(t, 0, recordCount)
}

// The same wiring with a real record repository commits the pair together.
func TestService_FileCitation_ThirdCitationCommitsPair(t *testing.T) {
	t.Parallel()

	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()

	planet := testhelper.SeedPlanet(t, pool)
	citizen := testhelper.SeedCitizen(t, pool, planet.ID)
	officer := testhelper.SeedUser(t, pool, domain.RoleOfficer)

	testhelper.SeedCitation(t, pool, citizen.ID, domain.Credits(40000))
	testhelper.SeedCitation(t, pool, citizen.ID, domain.Credits(40000))

	citizens := pgcitizen.New(pool)
	citations := pgcitation.New(pool)
	records := pgrecord.New(pool)
	tm := postgres.NewTxManager(pool)

	svc := newTestService(citizens, citations, records, tm)

	officerCtx := ctxutil.WithUser(ctx, officer.ID, domain.RoleOfficer)
	result, err := svc.FileCitation(officerCtx, FileCitationInput{
		CitizenID:   citizen.ID,
		Description: "third strike",
	})

	require.NoError(t, err)
	require.NotNil(t, result.CriminalRecord)
	assert.Equal(t, 3, result.Outcome.CitationNumber)
	assert.Equal(t, domain.Credits(0), result.Citation.FineAmount)
	assert.True(t, result.CriminalRecord.AutoGenerated)

	count, err := citations.CountByCitizen(ctx, citizen.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
