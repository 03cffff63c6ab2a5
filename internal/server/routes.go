package server

import (
	"net/http"
	"time"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Gold rates
	mux.HandleFunc("/api/rates/gold/today", s.handleRatesToday)
	mux.HandleFunc("/api/rates/gold/today/manual", s.handleRatesManual)
	mux.HandleFunc("/api/rates/gold/capture", s.handleRatesCapture)
	mux.HandleFunc("/api/rates/gold/history", s.handleRatesHistory)
	mux.HandleFunc("/api/rates/gold/history/chart", s.handleRatesHistoryChart)

	// Bills
	mux.HandleFunc("/api/bills/upload", s.handleBillUpload)
	mux.HandleFunc("/api/bills/", s.handleBillGet)

	// Investments
	mux.HandleFunc("/api/investments/preview", s.handleInvestmentPreview)
	mux.HandleFunc("/api/investments/", s.routeInvestmentByID)
	mux.HandleFunc("/api/investments", s.routeInvestments)

	// Portfolio
	mux.HandleFunc("/api/portfolio/summary", s.handlePortfolioSummary)
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}
