package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"staffplan/internal/kds"
	"staffplan/internal/report"
	"staffplan/internal/session"
	"staffplan/internal/visuals"
	"staffplan/internal/workforce"

	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type districtResponse struct {
	kds.District
	Status string `json:"status"`
}

type simulationResponse struct {
	workforce.Snapshot
	DistrictName string                  `json:"district_name"`
	Summary      report.ExecutiveSummary `json:"summary"`
	Chart        string                  `json:"chart,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]bool{"authenticated": s.dash.Sessions().IsAuthenticated()})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := s.dash.Sessions().Login(); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.dash.Sessions().Logout(); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
}

func (s *Server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	districts, err := s.dash.Districts(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	out := make([]districtResponse, 0, len(districts))
	for _, d := range districts {
		out = append(out, districtResponse{District: d, Status: kds.ScoreStatus(d.Score)})
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"districts": out})
}

func (s *Server) handleDistrictsCSV(w http.ResponseWriter, r *http.Request) {
	districts, err := s.dash.Districts(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.DistrictsCSVFilename(time.Now())))
	if err := report.WriteDistrictsCSV(w, districts); err != nil {
		s.log.Error().Err(err).Msg("Failed to write district CSV")
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dash.Summary(r.Context()))
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	id, ok := s.districtID(w, r)
	if !ok {
		return
	}

	months := 0
	if raw := r.URL.Query().Get("months"); raw != "" {
		var err error
		if months, err = strconv.Atoi(raw); err != nil {
			s.writeError(w, http.StatusBadRequest, "months must be an integer")
			return
		}
	}

	series, err := s.dash.Trends(r.Context(), id, months, r.URL.Query().Get("locale"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	resp := map[string]interface{}{
		"district_id":         series.DistrictID,
		"months":              series.Months,
		"productivity_target": visuals.ProductivityTarget,
		"trends":              series.Points,
	}
	if s.charts {
		resp["charts"] = []string{visuals.GenerateTrendChart(series.Points), visuals.GenerateProductivityChart(series.Points)}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	id, ok := s.districtID(w, r)
	if !ok {
		return
	}
	points, err := s.dash.Risk(r.Context(), id)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	resp := map[string]interface{}{"points": points}
	if s.charts {
		resp["chart"] = visuals.GenerateRiskMatrix(points)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkload(w http.ResponseWriter, r *http.Request) {
	id, ok := s.districtID(w, r)
	if !ok {
		return
	}
	rows, err := s.dash.Workload(r.Context(), id)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"legal_hours_limit": workforce.LegalHoursLimit,
		"rows":              rows,
	})
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dash.Scenario())
}

func (s *Server) handlePutScenario(w http.ResponseWriter, r *http.Request) {
	var params workforce.ScenarioParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid scenario body: "+err.Error())
		return
	}
	if err := s.dash.SetScenario(params); err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, params)
}

func (s *Server) handleSimulation(w http.ResponseWriter, r *http.Request) {
	snap, name, ok := s.simulate(w, r)
	if !ok {
		return
	}
	resp := simulationResponse{
		Snapshot:     snap,
		DistrictName: name,
		Summary:      report.Summarize(snap.Verdict),
	}
	if s.charts {
		resp.Chart = visuals.GenerateStaffingChart(snap.Departments)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSimulationXLSX(w http.ResponseWriter, r *http.Request) {
	snap, name, ok := s.simulate(w, r)
	if !ok {
		return
	}

	// Buffered so a failed render can still become a JSON error.
	var buf bytes.Buffer
	if err := report.WriteSimulationXLSX(&buf, snap, name); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"Simulation_%d_%s.xlsx\"", snap.DistrictID, time.Now().Format("2006-01-02")))
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Error().Err(err).Msg("Failed to write simulation workbook")
	}
}

func (s *Server) handleSimulationMarkdown(w http.ResponseWriter, r *http.Request) {
	snap, name, ok := s.simulate(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(report.RenderSimulationMarkdown(snap, name, s.charts))); err != nil {
		s.log.Error().Err(err).Msg("Failed to write simulation report")
	}
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) (workforce.Snapshot, string, bool) {
	id, ok := s.districtID(w, r)
	if !ok {
		return workforce.Snapshot{}, "", false
	}
	snap, err := s.dash.Simulate(r.Context(), id)
	if err != nil {
		s.writeFailure(w, err)
		return workforce.Snapshot{}, "", false
	}
	return snap, s.dash.DistrictName(snap.DistrictID), true
}

func (s *Server) districtID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		s.writeError(w, http.StatusBadRequest, "district id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeFailure maps domain errors onto status codes. Anything unrecognised
// came from the upstream provider.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, workforce.ErrInvalidScenario), errors.Is(err, kds.ErrInvalidHorizon):
		status = http.StatusBadRequest
	case errors.Is(err, kds.ErrDistrictNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrUnauthenticated):
		status = http.StatusUnauthorized
	default:
		s.log.Error().Err(err).Msg("Upstream request failed")
	}
	s.writeError(w, status, err.Error())
}
