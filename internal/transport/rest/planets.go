package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
)

// planetRepo defines the minimal interface needed by PlanetHandler. Planets
// are reference data without business rules, so the handler talks to the
// repository directly.
type planetRepo interface {
	Create(ctx context.Context, p *domain.Planet) (*domain.Planet, error)
	List(ctx context.Context) ([]*domain.Planet, error)
}

// PlanetHandler serves planet reference-data REST endpoints.
type PlanetHandler struct {
	planets planetRepo
	log     *slog.Logger
}

// NewPlanetHandler creates a PlanetHandler.
func NewPlanetHandler(planets planetRepo, logger *slog.Logger) *PlanetHandler {
	return &PlanetHandler{planets: planets, log: logger.With("handler", "planet")}
}

type createPlanetRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type planetResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Create handles POST /planets. Admin only.
func (h *PlanetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPlanetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Code) == "" {
		handleError(r.Context(), h.log, w, domain.NewValidationError("name/code", "required"))
		return
	}

	created, err := h.planets.Create(r.Context(), &domain.Planet{
		ID:   uuid.New(),
		Name: req.Name,
		Code: strings.ToUpper(req.Code),
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPlanetResponse(created))
}

// List handles GET /planets.
func (h *PlanetHandler) List(w http.ResponseWriter, r *http.Request) {
	planets, err := h.planets.List(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	items := make([]planetResponse, 0, len(planets))
	for _, p := range planets {
		items = append(items, toPlanetResponse(p))
	}

	writeJSON(w, http.StatusOK, map[string][]planetResponse{"items": items})
}

func toPlanetResponse(p *domain.Planet) planetResponse {
	return planetResponse{
		ID:   p.ID.String(),
		Name: p.Name,
		Code: p.Code,
	}
}
