// Package interfaces defines service contracts for Aurum
package interfaces

import (
	"context"

	"github.com/bobmcallan/aurum/internal/models"
)

// StorageManager coordinates all storage areas.
type StorageManager interface {
	InvestmentStore() InvestmentStore
	RateStore() RateStore
	BillStore() BillStore

	// DataPath returns the base data directory path.
	DataPath() string

	// WriteRaw writes arbitrary binary data to a subdirectory atomically.
	// Key is sanitized for safe filenames (e.g. "bill-4f2a.pdf").
	WriteRaw(subdir, key string, data []byte) error

	// ReadRaw reads back a file written with WriteRaw.
	ReadRaw(subdir, key string) ([]byte, error)

	Close() error
}

// InvestmentStore persists investment records.
type InvestmentStore interface {
	Save(ctx context.Context, record *models.InvestmentRecord) error
	Get(ctx context.Context, id string) (*models.InvestmentRecord, error)
	List(ctx context.Context) ([]*models.InvestmentRecord, error)
	Delete(ctx context.Context, id string) error
}

// RateStore persists the daily gold-rate series, keyed by ISO capture date.
type RateStore interface {
	Upsert(ctx context.Context, snapshot *models.RateSnapshot) error
	GetByDate(ctx context.Context, date string) (*models.RateSnapshot, error)

	// Latest returns the snapshot with the maximum capture date, or an
	// error when the series is empty.
	Latest(ctx context.Context) (*models.RateSnapshot, error)

	// ListDesc returns all snapshots, most recent first.
	ListDesc(ctx context.Context) ([]*models.RateSnapshot, error)
}

// BillStore persists uploaded bills and their extraction results.
type BillStore interface {
	SaveBill(ctx context.Context, record *models.BillRecord) error
	GetBill(ctx context.Context, id string) (*models.BillRecord, error)
}
