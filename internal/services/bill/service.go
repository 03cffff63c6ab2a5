// Package bill ingests uploaded purchase bills and runs vision extraction.
package bill

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/bobmcallan/aurum/internal/common"
	"github.com/bobmcallan/aurum/internal/interfaces"
	"github.com/bobmcallan/aurum/internal/models"
)

const (
	billsSubdir = "bills"

	// Scanned PDFs yield almost no text layer; below this the original
	// bytes go to the vision model instead.
	minUsableTextLength = 100

	maxPDFTextLength = 50000
)

// Service runs bill extraction and stores both the raw upload and the
// structured result.
type Service struct {
	gemini  interfaces.GeminiClient
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new bill service
func NewService(gemini interfaces.GeminiClient, storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		gemini:  gemini,
		storage: storage,
		logger:  logger,
	}
}

// Extract parses an uploaded bill document into structured fields. PDFs
// with a text layer are extracted as text; scanned PDFs and images go to
// the vision model as inline bytes. The raw upload is retained on disk
// keyed by the bill id.
func (s *Service) Extract(ctx context.Context, category models.Category, fileName string, data []byte) (*models.BillRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	contentType := http.DetectContentType(data)
	isPDF := contentType == "application/pdf"
	isImage := strings.HasPrefix(contentType, "image/")
	if !isPDF && !isImage {
		return nil, fmt.Errorf("unsupported file type %s, only images and PDFs are accepted", contentType)
	}

	billID := uuid.New().String()
	ext := ".img"
	if isPDF {
		ext = ".pdf"
	}
	if err := s.storage.WriteRaw(billsSubdir, billID+ext, data); err != nil {
		s.logger.Warn().Err(err).Str("bill_id", billID).Msg("Failed to retain raw bill file")
	}

	prompt := extractionPrompt(category)

	var response string
	var err error
	if isPDF {
		if text := pdfText(data); len(text) >= minUsableTextLength {
			response, err = s.gemini.GenerateContent(ctx, prompt+"\n\nBILL TEXT:\n"+text)
		} else {
			response, err = s.gemini.GenerateWithFile(ctx, prompt, "application/pdf", data)
		}
	} else {
		response, err = s.gemini.GenerateWithFile(ctx, prompt, contentType, data)
	}
	if err != nil {
		return nil, fmt.Errorf("bill extraction failed: %w", err)
	}

	fields, err := parseExtraction(response)
	if err != nil {
		return nil, err
	}

	record := &models.BillRecord{
		ID:        billID,
		Category:  category,
		FileName:  fileName,
		Extracted: *fields,
		CreatedAt: time.Now(),
	}
	if err := s.storage.BillStore().SaveBill(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("bill_id", billID).
		Str("category", string(category)).
		Str("vendor", fields.Vendor).
		Msg("Bill extracted")

	return record, nil
}

// Get returns a previously extracted bill.
func (s *Service) Get(ctx context.Context, id string) (*models.BillRecord, error) {
	return s.storage.BillStore().GetBill(ctx, id)
}

// pdfText extracts the text layer from a PDF, truncated for the model's
// context window. Empty on any failure; the caller falls back to vision.
// The pdf library panics on some malformed files, hence the recover.
func pdfText(data []byte) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
		if sb.Len() > maxPDFTextLength {
			break
		}
	}

	result = sb.String()
	if len(result) > maxPDFTextLength {
		result = result[:maxPDFTextLength]
	}
	return strings.TrimSpace(result)
}

// parseExtraction decodes the model's JSON reply into BillFields.
func parseExtraction(response string) (*models.BillFields, error) {
	// Strip markdown code fences if present
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var fields models.BillFields
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, fmt.Errorf("extraction returned unparseable JSON: %w", err)
	}
	fields.Sanitize()
	return &fields, nil
}
