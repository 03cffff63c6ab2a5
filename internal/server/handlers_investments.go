package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bobmcallan/aurum/internal/models"
	"github.com/bobmcallan/aurum/internal/services/investment"
	"github.com/bobmcallan/aurum/internal/services/rates"
)

// routeInvestments handles /api/investments (list, create).
func (s *Server) routeInvestments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleInvestmentList(w, r)
	case http.MethodPost:
		s.handleInvestmentCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeInvestmentByID handles /api/investments/{id} (get, delete).
func (s *Server) routeInvestmentByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/investments/", "")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleInvestmentGet(w, r, id)
	case http.MethodDelete:
		s.handleInvestmentDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

// handleInvestmentPreview handles POST /api/investments/preview:
// reconciliation without persistence.
func (s *Server) handleInvestmentPreview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var input models.InvestmentInput
	if !DecodeJSON(w, r, &input) {
		return
	}

	outcome, err := s.app.InvestmentService.Preview(r.Context(), &input)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Reconciliation failed: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleInvestmentCreate(w http.ResponseWriter, r *http.Request) {
	var input models.InvestmentInput
	if !DecodeJSON(w, r, &input) {
		return
	}

	record, err := s.app.InvestmentService.Create(r.Context(), &input)
	if err != nil {
		var confirmErr *investment.ConfirmationRequiredError
		if errors.As(err, &confirmErr) {
			WriteJSON(w, http.StatusConflict, map[string]interface{}{
				"error":   confirmErr.Error(),
				"code":    "confirmation_required",
				"outcome": confirmErr.Outcome,
			})
			return
		}
		WriteError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Error creating investment: %v", err))
		return
	}

	WriteJSON(w, http.StatusCreated, record)
}

func (s *Server) handleInvestmentList(w http.ResponseWriter, r *http.Request) {
	records, err := s.app.InvestmentService.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing investments: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"investments": records,
	})
}

func (s *Server) handleInvestmentGet(w http.ResponseWriter, r *http.Request, id string) {
	record, err := s.app.InvestmentService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Investment not found: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, record)
}

func (s *Server) handleInvestmentDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.app.InvestmentService.Delete(r.Context(), id); err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Error deleting investment: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": id,
	})
}

// handlePortfolioSummary handles GET /api/portfolio/summary.
func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	summary, err := s.app.InvestmentService.Summary(r.Context())
	if err != nil {
		if errors.Is(err, rates.ErrRatesUnavailable) {
			WriteErrorWithCode(w, http.StatusServiceUnavailable, err.Error(), "rates_unavailable")
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error building summary: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}
