package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
	"github.com/interpolice/interpolice-backend/internal/service/citation"
)

// citationService defines the minimal interface needed by CitationHandler.
type citationService interface {
	FileCitation(ctx context.Context, input citation.FileCitationInput) (*citation.FileCitationResult, error)
	GetCitation(ctx context.Context, id uuid.UUID) (*domain.Citation, error)
	ListByCitizen(ctx context.Context, citizenID uuid.UUID, input citation.ListInput) ([]*domain.Citation, int, error)
	List(ctx context.Context, input citation.ListInput) ([]*domain.Citation, int, error)
	UpdateCitation(ctx context.Context, input citation.UpdateCitationInput) (*domain.Citation, error)
	DeleteCitation(ctx context.Context, id uuid.UUID) error
}

// CitationHandler serves citation REST endpoints.
type CitationHandler struct {
	svc citationService
	log *slog.Logger
}

// NewCitationHandler creates a CitationHandler.
func NewCitationHandler(svc citationService, logger *slog.Logger) *CitationHandler {
	return &CitationHandler{svc: svc, log: logger.With("handler", "citation")}
}

type fileCitationRequest struct {
	Description string `json:"description"`
}

type updateCitationRequest struct {
	Description string `json:"description"`
}

type citationResponse struct {
	ID          string    `json:"id"`
	CitizenID   string    `json:"citizenId"`
	Description string    `json:"description"`
	FineAmount  string    `json:"fineAmount"`
	IssuedAt    time.Time `json:"issuedAt"`
	CreatedBy   *string   `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type penaltyDetails struct {
	CitationNumber        int    `json:"citationNumber"`
	FineAmount            string `json:"fineAmount"`
	CourseHours           int    `json:"courseHours"`
	CommunityWorkDays     int    `json:"communityWorkDays"`
	JailDays              int    `json:"jailDays"`
	CreatesCriminalRecord bool   `json:"createsCriminalRecord"`
	Description           string `json:"description"`
}

type automaticActions struct {
	CriminalRecordCreated bool    `json:"criminalRecordCreated"`
	CriminalRecordID      *string `json:"criminalRecordId,omitempty"`
}

type fileCitationResponse struct {
	Citation         citationResponse `json:"citation"`
	PenaltyDetails   penaltyDetails   `json:"penaltyDetails"`
	AutomaticActions automaticActions `json:"automaticActions"`
	Warning          string           `json:"warning,omitempty"`
}

// File handles POST /citizens/{id}/citations.
func (h *CitationHandler) File(w http.ResponseWriter, r *http.Request) {
	citizenID, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	var req fileCitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.FileCitation(r.Context(), citation.FileCitationInput{
		CitizenID:   citizenID,
		Description: req.Description,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := fileCitationResponse{
		Citation: toCitationResponse(result.Citation),
		PenaltyDetails: penaltyDetails{
			CitationNumber:        result.Outcome.CitationNumber,
			FineAmount:            result.Outcome.FineAmount.String(),
			CourseHours:           result.Outcome.CourseHours,
			CommunityWorkDays:     result.Outcome.CommunityWorkDays,
			JailDays:              result.Outcome.JailDays,
			CreatesCriminalRecord: result.Outcome.CreatesCriminalRecord,
			Description:           result.Outcome.Description,
		},
		AutomaticActions: automaticActions{
			CriminalRecordCreated: result.CriminalRecord != nil,
		},
	}
	if result.CriminalRecord != nil {
		id := result.CriminalRecord.ID.String()
		resp.AutomaticActions.CriminalRecordID = &id
		resp.Warning = fmt.Sprintf("citation number %d triggered an automatic criminal record",
			result.Outcome.CitationNumber)
	}

	writeJSON(w, http.StatusCreated, resp)
}

// ListByCitizen handles GET /citizens/{id}/citations.
func (h *CitationHandler) ListByCitizen(w http.ResponseWriter, r *http.Request) {
	citizenID, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	input := citation.ListInput{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}

	citations, total, err := h.svc.ListByCitizen(r.Context(), citizenID, input)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCitationList(citations, total, input))
}

// List handles GET /citations.
func (h *CitationHandler) List(w http.ResponseWriter, r *http.Request) {
	input := citation.ListInput{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}

	citations, total, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCitationList(citations, total, input))
}

// Get handles GET /citations/{id}.
func (h *CitationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	c, err := h.svc.GetCitation(r.Context(), id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCitationResponse(c))
}

// Update handles PUT /citations/{id}. Admin only.
func (h *CitationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	var req updateCitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateCitation(r.Context(), citation.UpdateCitationInput{
		ID:          id,
		Description: req.Description,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCitationResponse(updated))
}

// Delete handles DELETE /citations/{id}. Admin only.
func (h *CitationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	if err := h.svc.DeleteCitation(r.Context(), id); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCitationResponse(c *domain.Citation) citationResponse {
	resp := citationResponse{
		ID:          c.ID.String(),
		CitizenID:   c.CitizenID.String(),
		Description: c.Description,
		FineAmount:  c.FineAmount.String(),
		IssuedAt:    c.IssuedAt,
		CreatedAt:   c.CreatedAt,
	}
	if c.CreatedBy != nil {
		createdBy := c.CreatedBy.String()
		resp.CreatedBy = &createdBy
	}
	return resp
}

func toCitationList(citations []*domain.Citation, total int, input citation.ListInput) listResponse[citationResponse] {
	items := make([]citationResponse, 0, len(citations))
	for _, c := range citations {
		items = append(items, toCitationResponse(c))
	}
	return listResponse[citationResponse]{
		Items:  items,
		Total:  total,
		Limit:  input.Limit,
		Offset: input.Offset,
	}
}
