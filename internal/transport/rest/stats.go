package rest

import (
	"context"
	"log/slog"
	"net/http"

	pgstats "github.com/interpolice/interpolice-backend/internal/adapter/postgres/stats"
)

// statsService defines the minimal interface needed by StatsHandler.
type statsService interface {
	Overview(ctx context.Context) (*pgstats.Totals, error)
	TopOffenders(ctx context.Context, limit int) ([]pgstats.Offender, error)
	RecordsByPlanet(ctx context.Context) ([]pgstats.PlanetRecords, error)
}

// StatsHandler serves reporting REST endpoints.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger.With("handler", "stats")}
}

type overviewResponse struct {
	Citizens        int    `json:"citizens"`
	Citations       int    `json:"citations"`
	CriminalRecords int    `json:"criminalRecords"`
	AutoRecords     int    `json:"autoGeneratedRecords"`
	FinesTotal      string `json:"finesTotal"`

	// EscalationRate is auto-generated records per citation, 0 when no
	// citations exist.
	EscalationRate float64 `json:"escalationRate"`
}

type offenderResponse struct {
	CitizenID     string `json:"citizenId"`
	CitizenName   string `json:"citizenName"`
	CitationCount int    `json:"citationCount"`
	FinesTotal    string `json:"finesTotal"`
}

type planetRecordsResponse struct {
	PlanetID    string `json:"planetId"`
	PlanetName  string `json:"planetName"`
	RecordCount int    `json:"recordCount"`
}

// Overview handles GET /stats/overview.
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.Overview(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := overviewResponse{
		Citizens:        totals.Citizens,
		Citations:       totals.Citations,
		CriminalRecords: totals.CriminalRecords,
		AutoRecords:     totals.AutoRecords,
		FinesTotal:      totals.FinesTotal.String(),
	}
	if totals.Citations > 0 {
		resp.EscalationRate = float64(totals.AutoRecords) / float64(totals.Citations)
	}

	writeJSON(w, http.StatusOK, resp)
}

// TopOffenders handles GET /stats/top-offenders.
func (h *StatsHandler) TopOffenders(w http.ResponseWriter, r *http.Request) {
	offenders, err := h.svc.TopOffenders(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	items := make([]offenderResponse, 0, len(offenders))
	for _, o := range offenders {
		items = append(items, offenderResponse{
			CitizenID:     o.CitizenID.String(),
			CitizenName:   o.CitizenName,
			CitationCount: o.CitationCount,
			FinesTotal:    o.FinesTotal.String(),
		})
	}

	writeJSON(w, http.StatusOK, map[string][]offenderResponse{"items": items})
}

// RecordsByPlanet handles GET /stats/records-by-planet.
func (h *StatsHandler) RecordsByPlanet(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.RecordsByPlanet(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	items := make([]planetRecordsResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, planetRecordsResponse{
			PlanetID:    row.PlanetID.String(),
			PlanetName:  row.PlanetName,
			RecordCount: row.RecordCount,
		})
	}

	writeJSON(w, http.StatusOK, map[string][]planetRecordsResponse{"items": items})
}
