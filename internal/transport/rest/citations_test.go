package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpolice/interpolice-backend/internal/domain"
	"github.com/interpolice/interpolice-backend/internal/service/citation"
	"github.com/interpolice/interpolice-backend/internal/service/penalty"
)

type citationServiceMock struct {
	FileCitationFunc   func(ctx context.Context, input citation.FileCitationInput) (*citation.FileCitationResult, error)
	GetCitationFunc    func(ctx context.Context, id uuid.UUID) (*domain.Citation, error)
	ListByCitizenFunc  func(ctx context.Context, citizenID uuid.UUID, input citation.ListInput) ([]*domain.Citation, int, error)
	ListFunc           func(ctx context.Context, input citation.ListInput) ([]*domain.Citation, int, error)
	UpdateCitationFunc func(ctx context.Context, input citation.UpdateCitationInput) (*domain.Citation, error)
	DeleteCitationFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *citationServiceMock) FileCitation(ctx context.Context, input citation.FileCitationInput) (*citation.FileCitationResult, error) {
	return m.FileCitationFunc(ctx, input)
}

func (m *citationServiceMock) GetCitation(ctx context.Context, id uuid.UUID) (*domain.Citation, error) {
	return m.GetCitationFunc(ctx, id)
}

func (m *citationServiceMock) ListByCitizen(ctx context.Context, citizenID uuid.UUID, input citation.ListInput) ([]*domain.Citation, int, error) {
	return m.ListByCitizenFunc(ctx, citizenID, input)
}

func (m *citationServiceMock) List(ctx context.Context, input citation.ListInput) ([]*domain.Citation, int, error) {
	return m.ListFunc(ctx, input)
}

func (m *citationServiceMock) UpdateCitation(ctx context.Context, input citation.UpdateCitationInput) (*domain.Citation, error) {
	return m.UpdateCitationFunc(ctx, input)
}

func (m *citationServiceMock) DeleteCitation(ctx context.Context, id uuid.UUID) error {
	return m.DeleteCitationFunc(ctx, id)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCitationHandler_File_Escalation(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	recordID := uuid.New()

	svc := &citationServiceMock{
		FileCitationFunc: func(ctx context.Context, input citation.FileCitationInput) (*citation.FileCitationResult, error) {
			assert.Equal(t, citizenID, input.CitizenID)
			assert.Equal(t, "loud music after hours", input.Description)

			outcome := penalty.Calculate(2)
			return &citation.FileCitationResult{
				Citation: &domain.Citation{
					ID:          uuid.New(),
					CitizenID:   citizenID,
					Description: input.Description,
					FineAmount:  outcome.FineAmount,
					IssuedAt:    time.Now().UTC(),
				},
				Outcome: outcome,
				CriminalRecord: &domain.CriminalRecord{
					ID:        recordID,
					CitizenID: citizenID,
				},
			}, nil
		},
	}

	h := NewCitationHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/citizens/"+citizenID.String()+"/citations",
		strings.NewReader(`{"description":"loud music after hours"}`))
	req.SetPathValue("id", citizenID.String())
	rec := httptest.NewRecorder()

	h.File(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp fileCitationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 3, resp.PenaltyDetails.CitationNumber)
	assert.Equal(t, 8, resp.PenaltyDetails.JailDays)
	assert.Equal(t, "0.00", resp.PenaltyDetails.FineAmount)
	assert.True(t, resp.PenaltyDetails.CreatesCriminalRecord)
	assert.True(t, resp.AutomaticActions.CriminalRecordCreated)
	require.NotNil(t, resp.AutomaticActions.CriminalRecordID)
	assert.Equal(t, recordID.String(), *resp.AutomaticActions.CriminalRecordID)
	assert.NotEmpty(t, resp.Warning)
}

func TestCitationHandler_File_FirstCitation(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	svc := &citationServiceMock{
		FileCitationFunc: func(ctx context.Context, input citation.FileCitationInput) (*citation.FileCitationResult, error) {
			outcome := penalty.Calculate(0)
			return &citation.FileCitationResult{
				Citation: &domain.Citation{
					ID:         uuid.New(),
					CitizenID:  citizenID,
					FineAmount: outcome.FineAmount,
				},
				Outcome: outcome,
			}, nil
		},
	}

	h := NewCitationHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/citizens/"+citizenID.String()+"/citations",
		strings.NewReader(`{"description":"jaywalking"}`))
	req.SetPathValue("id", citizenID.String())
	rec := httptest.NewRecorder()

	h.File(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp fileCitationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "400.00", resp.PenaltyDetails.FineAmount)
	assert.Equal(t, 48, resp.PenaltyDetails.CourseHours)
	assert.False(t, resp.PenaltyDetails.CreatesCriminalRecord)
	assert.False(t, resp.AutomaticActions.CriminalRecordCreated)
	assert.Nil(t, resp.AutomaticActions.CriminalRecordID)
	assert.Empty(t, resp.Warning)
}

func TestCitationHandler_File_UnknownCitizen(t *testing.T) {
	t.Parallel()

	svc := &citationServiceMock{
		FileCitationFunc: func(ctx context.Context, input citation.FileCitationInput) (*citation.FileCitationResult, error) {
			return nil, domain.NewNotFoundError("citizen", input.CitizenID.String())
		},
	}

	h := NewCitationHandler(svc, testLogger())

	id := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/citizens/"+id.String()+"/citations",
		strings.NewReader(`{"description":"x"}`))
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	h.File(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCitationHandler_File_BadCitizenID(t *testing.T) {
	t.Parallel()

	h := NewCitationHandler(&citationServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/citizens/not-a-uuid/citations",
		strings.NewReader(`{"description":"x"}`))
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()

	h.File(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCitationHandler_File_MalformedBody(t *testing.T) {
	t.Parallel()

	h := NewCitationHandler(&citationServiceMock{}, testLogger())

	id := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/citizens/"+id.String()+"/citations",
		strings.NewReader(`{broken`))
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	h.File(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCitationHandler_ListByCitizen(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	svc := &citationServiceMock{
		ListByCitizenFunc: func(ctx context.Context, gotID uuid.UUID, input citation.ListInput) ([]*domain.Citation, int, error) {
			assert.Equal(t, citizenID, gotID)
			assert.Equal(t, 10, input.Limit)
			return []*domain.Citation{
				{ID: uuid.New(), CitizenID: citizenID, FineAmount: domain.Credits(40000)},
			}, 1, nil
		},
	}

	h := NewCitationHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/citizens/"+citizenID.String()+"/citations?limit=10", nil)
	req.SetPathValue("id", citizenID.String())
	rec := httptest.NewRecorder()

	h.ListByCitizen(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse[citationResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "400.00", resp.Items[0].FineAmount)
	assert.Equal(t, 1, resp.Total)
}
