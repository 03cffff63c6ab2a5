// Package storage provides BadgerDB-based persistence
package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/aurum/internal/common"
	"github.com/bobmcallan/aurum/internal/models"
)

// BadgerDB wraps badgerhold for typed storage
type BadgerDB struct {
	store  *badgerhold.Store
	logger *common.Logger
}

// NewBadgerDB creates a new BadgerDB instance
func NewBadgerDB(logger *common.Logger, path string) (*BadgerDB, error) {
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil // Disable badger's internal logging

	store, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}

	logger.Debug().Str("path", path).Msg("BadgerDB opened")

	return &BadgerDB{
		store:  store,
		logger: logger,
	}, nil
}

// Close closes the database
func (db *BadgerDB) Close() error {
	if db.store != nil {
		return db.store.Close()
	}
	return nil
}

// investmentStore implements interfaces.InvestmentStore using BadgerDB
type investmentStore struct {
	db     *BadgerDB
	logger *common.Logger
}

func newInvestmentStore(db *BadgerDB, logger *common.Logger) *investmentStore {
	return &investmentStore{db: db, logger: logger}
}

func (s *investmentStore) Save(ctx context.Context, record *models.InvestmentRecord) error {
	record.UpdatedAt = time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = record.UpdatedAt
	}

	if err := s.db.store.Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to save investment: %w", err)
	}
	s.logger.Debug().Str("id", record.ID).Str("name", record.Name).Msg("Investment saved")
	return nil
}

func (s *investmentStore) Get(ctx context.Context, id string) (*models.InvestmentRecord, error) {
	var record models.InvestmentRecord
	err := s.db.store.Get(id, &record)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("investment '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}
	return &record, nil
}

func (s *investmentStore) List(ctx context.Context) ([]*models.InvestmentRecord, error) {
	var records []*models.InvestmentRecord
	if err := s.db.store.Find(&records, nil); err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}

	// Newest first, matching the dashboard ordering
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *investmentStore) Delete(ctx context.Context, id string) error {
	err := s.db.store.Delete(id, models.InvestmentRecord{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("investment '%s' not found", id)
		}
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	s.logger.Debug().Str("id", id).Msg("Investment deleted")
	return nil
}

// rateStore implements interfaces.RateStore using BadgerDB
type rateStore struct {
	db     *BadgerDB
	logger *common.Logger
}

func newRateStore(db *BadgerDB, logger *common.Logger) *rateStore {
	return &rateStore{db: db, logger: logger}
}

func (s *rateStore) Upsert(ctx context.Context, snapshot *models.RateSnapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	if err := s.db.store.Upsert(snapshot.Date, snapshot); err != nil {
		return fmt.Errorf("failed to save rate snapshot: %w", err)
	}
	s.logger.Debug().Str("date", snapshot.Date).Str("provenance", snapshot.Provenance).Msg("Rate snapshot saved")
	return nil
}

func (s *rateStore) GetByDate(ctx context.Context, date string) (*models.RateSnapshot, error) {
	var snapshot models.RateSnapshot
	err := s.db.store.Get(date, &snapshot)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("no rate snapshot for %s", date)
		}
		return nil, fmt.Errorf("failed to get rate snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *rateStore) Latest(ctx context.Context) (*models.RateSnapshot, error) {
	snapshots, err := s.ListDesc(ctx)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("rate history is empty")
	}
	return snapshots[0], nil
}

func (s *rateStore) ListDesc(ctx context.Context) ([]*models.RateSnapshot, error) {
	var snapshots []*models.RateSnapshot
	if err := s.db.store.Find(&snapshots, nil); err != nil {
		return nil, fmt.Errorf("failed to list rate snapshots: %w", err)
	}

	// ISO dates sort lexically; descending puts the max capture date first
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Date > snapshots[j].Date
	})
	return snapshots, nil
}

// billStore implements interfaces.BillStore using BadgerDB
type billStore struct {
	db     *BadgerDB
	logger *common.Logger
}

func newBillStore(db *BadgerDB, logger *common.Logger) *billStore {
	return &billStore{db: db, logger: logger}
}

func (s *billStore) SaveBill(ctx context.Context, record *models.BillRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if err := s.db.store.Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to save bill: %w", err)
	}
	s.logger.Debug().Str("id", record.ID).Str("file", record.FileName).Msg("Bill saved")
	return nil
}

func (s *billStore) GetBill(ctx context.Context, id string) (*models.BillRecord, error) {
	var record models.BillRecord
	err := s.db.store.Get(id, &record)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("bill '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return &record, nil
}
