package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/bobmcallan/aurum/internal/models"
)

// maxBillUploadBytes caps bill uploads at 15MB, enough for multi-page
// scans.
const maxBillUploadBytes = 15 << 20

// handleBillUpload handles POST /api/bills/upload. Multipart form with a
// "file" part and a "category" field (gold | diamond).
func (s *Server) handleBillUpload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.BillService == nil {
		WriteError(w, http.StatusServiceUnavailable, "Bill extraction is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBillUploadBytes)
	if err := r.ParseMultipartForm(maxBillUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid multipart form: %v", err))
		return
	}

	category := models.Category(r.FormValue("category"))
	if category == "" {
		category = models.CategoryGold
	}
	if !category.Valid() {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Unknown category %q", category))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "A 'file' part is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Error reading upload: %v", err))
		return
	}

	record, err := s.app.BillService.Extract(r.Context(), category, header.Filename, data)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Extraction failed: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"bill_id":   record.ID,
		"category":  record.Category,
		"file_name": record.FileName,
		"extracted": record.Extracted,
	})
}

// handleBillGet handles GET /api/bills/{id}.
func (s *Server) handleBillGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if s.app.BillService == nil {
		WriteError(w, http.StatusServiceUnavailable, "Bill extraction is not configured")
		return
	}

	id := PathParam(r, "/api/bills/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Bill id is required")
		return
	}

	record, err := s.app.BillService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Bill not found: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, record)
}
