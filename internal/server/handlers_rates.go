package server

import (
	"fmt"
	"net/http"
	"strconv"
)

// handleRatesToday handles GET /api/rates/gold/today.
func (s *Server) handleRatesToday(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot, err := s.app.RateService.Current(r.Context())
	if err != nil {
		WriteErrorWithCode(w, http.StatusServiceUnavailable, fmt.Sprintf("Rates unavailable: %v", err), "rates_unavailable")
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

// handleRatesManual handles POST /api/rates/gold/today/manual. Tier keys
// arrive as JSON object keys ("24", "22", ...).
func (s *Server) handleRatesManual(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		PerGram map[string]float64 `json:"per_gram"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	perGram := make(map[int]float64, len(req.PerGram))
	for tier, rate := range req.PerGram {
		karat, err := strconv.Atoi(tier)
		if err != nil {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid karat tier %q", tier))
			return
		}
		perGram[karat] = rate
	}

	snapshot, err := s.app.RateService.SaveManual(r.Context(), perGram)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Error saving manual rates: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

// handleRatesCapture handles POST /api/rates/gold/capture, an on-demand
// run of the daily capture.
func (s *Server) handleRatesCapture(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := s.app.RateService.CaptureDaily(r.Context()); err != nil {
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Rate capture failed: %v", err))
		return
	}

	snapshot, err := s.app.RateService.Current(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error reading captured rates: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

// handleRatesHistory handles GET /api/rates/gold/history.
func (s *Server) handleRatesHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshots, err := s.app.RateService.History(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing rate history: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": snapshots,
	})
}

// handleRatesHistoryChart handles GET /api/rates/gold/history/chart,
// returning a PNG.
func (s *Server) handleRatesHistoryChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	png, err := s.app.RateService.HistoryChart(r.Context())
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Chart unavailable: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
