package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
	"github.com/interpolice/interpolice-backend/internal/service/record"
)

// recordService defines the minimal interface needed by RecordHandler.
type recordService interface {
	CreateRecord(ctx context.Context, input record.CreateRecordInput) (*domain.CriminalRecord, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*domain.CriminalRecord, error)
	ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]*domain.CriminalRecord, int, error)
	List(ctx context.Context, limit, offset int) ([]*domain.CriminalRecord, int, error)
	UpdateRecord(ctx context.Context, input record.UpdateRecordInput) (*domain.CriminalRecord, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
}

// RecordHandler serves criminal record REST endpoints.
type RecordHandler struct {
	svc recordService
	log *slog.Logger
}

// NewRecordHandler creates a RecordHandler.
func NewRecordHandler(svc recordService, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{svc: svc, log: logger.With("handler", "record")}
}

type createRecordRequest struct {
	CitizenID   string    `json:"citizenId"`
	Description string    `json:"description"`
	CrimeType   string    `json:"crimeType"`
	Location    string    `json:"location"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type updateRecordRequest struct {
	Description *string    `json:"description"`
	CrimeType   *string    `json:"crimeType"`
	Location    *string    `json:"location"`
	OccurredAt  *time.Time `json:"occurredAt"`
}

type recordResponse struct {
	ID            string    `json:"id"`
	CitizenID     string    `json:"citizenId"`
	Description   string    `json:"description"`
	CrimeType     string    `json:"crimeType"`
	Location      string    `json:"location"`
	OccurredAt    time.Time `json:"occurredAt"`
	AutoGenerated bool      `json:"autoGenerated"`
	CreatedBy     *string   `json:"createdBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Create handles POST /records. Admin only.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := record.CreateRecordInput{
		Description: req.Description,
		CrimeType:   domain.CrimeType(req.CrimeType),
		Location:    req.Location,
		OccurredAt:  req.OccurredAt,
	}
	input.CitizenID, _ = uuid.Parse(req.CitizenID)

	created, err := h.svc.CreateRecord(r.Context(), input)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(created))
}

// Get handles GET /records/{id}.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	rec, err := h.svc.GetRecord(r.Context(), id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// ListByCitizen handles GET /citizens/{id}/records.
func (h *RecordHandler) ListByCitizen(w http.ResponseWriter, r *http.Request) {
	citizenID, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	records, total, err := h.svc.ListByCitizen(r.Context(), citizenID, limit, offset)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordList(records, total, limit, offset))
}

// List handles GET /records.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	records, total, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordList(records, total, limit, offset))
}

// Update handles PUT /records/{id}. Admin only.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	var req updateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := record.UpdateRecordInput{
		ID:          id,
		Description: req.Description,
		Location:    req.Location,
		OccurredAt:  req.OccurredAt,
	}
	if req.CrimeType != nil {
		crimeType := domain.CrimeType(*req.CrimeType)
		input.CrimeType = &crimeType
	}

	updated, err := h.svc.UpdateRecord(r.Context(), input)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(updated))
}

// Delete handles DELETE /records/{id}. Admin only.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	if err := h.svc.DeleteRecord(r.Context(), id); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toRecordResponse(rec *domain.CriminalRecord) recordResponse {
	resp := recordResponse{
		ID:            rec.ID.String(),
		CitizenID:     rec.CitizenID.String(),
		Description:   rec.Description,
		CrimeType:     rec.CrimeType.String(),
		Location:      rec.Location,
		OccurredAt:    rec.OccurredAt,
		AutoGenerated: rec.AutoGenerated,
		CreatedAt:     rec.CreatedAt,
	}
	if rec.CreatedBy != nil {
		createdBy := rec.CreatedBy.String()
		resp.CreatedBy = &createdBy
	}
	return resp
}

func toRecordList(records []*domain.CriminalRecord, total, limit, offset int) listResponse[recordResponse] {
	items := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, toRecordResponse(rec))
	}
	return listResponse[recordResponse]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
