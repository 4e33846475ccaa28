package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
	"github.com/interpolice/interpolice-backend/internal/service/citizen"
)

// citizenService defines the minimal interface needed by CitizenHandler.
type citizenService interface {
	CreateCitizen(ctx context.Context, input citizen.CreateCitizenInput) (*domain.Citizen, error)
	GetCitizen(ctx context.Context, id uuid.UUID) (*domain.Citizen, error)
	UpdateCitizen(ctx context.Context, input citizen.UpdateCitizenInput) (*domain.Citizen, error)
	DeleteCitizen(ctx context.Context, id uuid.UUID) error
	SearchCitizens(ctx context.Context, input citizen.SearchInput) ([]*domain.Citizen, int, error)
	UploadAvatar(ctx context.Context, citizenID uuid.UUID, filename string, data []byte) (*domain.Citizen, error)
	DeleteAvatar(ctx context.Context, citizenID uuid.UUID) error
}

// CitizenHandler serves citizen registry REST endpoints.
type CitizenHandler struct {
	svc           citizenService
	maxUploadSize int64
	log           *slog.Logger
}

// NewCitizenHandler creates a CitizenHandler.
func NewCitizenHandler(svc citizenService, maxUploadSize int64, logger *slog.Logger) *CitizenHandler {
	return &CitizenHandler{svc: svc, maxUploadSize: maxUploadSize, log: logger.With("handler", "citizen")}
}

type createCitizenRequest struct {
	Name              string `json:"name"`
	Status            string `json:"status"`
	OriginPlanetID    string `json:"originPlanetId"`
	ResidencePlanetID string `json:"residencePlanetId"`
}

type updateCitizenRequest struct {
	Name              *string `json:"name"`
	Status            *string `json:"status"`
	OriginPlanetID    *string `json:"originPlanetId"`
	ResidencePlanetID *string `json:"residencePlanetId"`
}

type citizenResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Status            string    `json:"status"`
	OriginPlanetID    string    `json:"originPlanetId"`
	ResidencePlanetID string    `json:"residencePlanetId"`
	AvatarURL         *string   `json:"avatarUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Create handles POST /citizens.
func (h *CitizenHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCitizenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := citizen.CreateCitizenInput{
		Name:   req.Name,
		Status: domain.CitizenStatus(req.Status),
	}
	// Bad UUIDs stay Nil and fail input validation with a field error.
	input.OriginPlanetID, _ = uuid.Parse(req.OriginPlanetID)
	input.ResidencePlanetID, _ = uuid.Parse(req.ResidencePlanetID)

	created, err := h.svc.CreateCitizen(r.Context(), input)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCitizenResponse(created))
}

// Get handles GET /citizens/{id}.
func (h *CitizenHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	c, err := h.svc.GetCitizen(r.Context(), id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCitizenResponse(c))
}

// List handles GET /citizens with search, filter and pagination parameters.
func (h *CitizenHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := citizen.SearchInput{
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Limit:     queryInt(r, "limit", 0),
		Offset:    queryInt(r, "offset", 0),
	}
	if raw := q.Get("status"); raw != "" {
		status := domain.CitizenStatus(raw)
		input.Status = &status
	}
	if raw := q.Get("planetId"); raw != "" {
		planetID, err := uuid.Parse(raw)
		if err != nil {
			handleError(r.Context(), h.log, w, domain.NewValidationError("planetId", "must be a valid UUID"))
			return
		}
		input.PlanetID = &planetID
	}

	citizens, total, err := h.svc.SearchCitizens(r.Context(), input)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	items := make([]citizenResponse, 0, len(citizens))
	for _, c := range citizens {
		items = append(items, toCitizenResponse(c))
	}

	writeJSON(w, http.StatusOK, listResponse[citizenResponse]{
		Items:  items,
		Total:  total,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
}

// Update handles PUT /citizens/{id}.
func (h *CitizenHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	var req updateCitizenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := citizen.UpdateCitizenInput{ID: id, Name: req.Name}
	if req.Status != nil {
		status := domain.CitizenStatus(*req.Status)
		input.Status = &status
	}
	if req.OriginPlanetID != nil {
		planetID, err := uuid.Parse(*req.OriginPlanetID)
		if err != nil {
			handleError(r.Context(), h.log, w, domain.NewValidationError("originPlanetId", "must be a valid UUID"))
			return
		}
		input.OriginPlanetID = &planetID
	}
	if req.ResidencePlanetID != nil {
		planetID, err := uuid.Parse(*req.ResidencePlanetID)
		if err != nil {
			handleError(r.Context(), h.log, w, domain.NewValidationError("residencePlanetId", "must be a valid UUID"))
			return
		}
		input.ResidencePlanetID = &planetID
	}

	updated, err := h.svc.UpdateCitizen(r.Context(), input)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCitizenResponse(updated))
}

// Delete handles DELETE /citizens/{id}.
func (h *CitizenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	if err := h.svc.DeleteCitizen(r.Context(), id); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadAvatar handles POST /citizens/{id}/avatar (multipart form, field "avatar").
func (h *CitizenHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "avatar too large")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing avatar file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable avatar file")
		return
	}

	c, err := h.svc.UploadAvatar(r.Context(), id, header.Filename, data)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCitizenResponse(c))
}

// DeleteAvatar handles DELETE /citizens/{id}/avatar.
func (h *CitizenHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	if err := h.svc.DeleteAvatar(r.Context(), id); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCitizenResponse(c *domain.Citizen) citizenResponse {
	return citizenResponse{
		ID:                c.ID.String(),
		Name:              c.Name,
		Status:            c.Status.String(),
		OriginPlanetID:    c.OriginPlanetID.String(),
		ResidencePlanetID: c.ResidencePlanetID.String(),
		AvatarURL:         c.AvatarURL,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
