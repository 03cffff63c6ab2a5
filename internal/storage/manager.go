package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bobmcallan/aurum/internal/common"
	"github.com/bobmcallan/aurum/internal/interfaces"
)

// Manager coordinates the badger store and the raw file area for uploaded
// bills. Implements interfaces.StorageManager.
type Manager struct {
	db       *BadgerDB
	dataPath string
	logger   *common.Logger

	investments *investmentStore
	rates       *rateStore
	bills       *billStore
}

// NewStorageManager opens the badger store under <dataPath>/db and prepares
// the raw file area.
func NewStorageManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	dataPath := config.Storage.Path
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := NewBadgerDB(logger, filepath.Join(dataPath, "db"))
	if err != nil {
		return nil, err
	}

	return &Manager{
		db:          db,
		dataPath:    dataPath,
		logger:      logger,
		investments: newInvestmentStore(db, logger),
		rates:       newRateStore(db, logger),
		bills:       newBillStore(db, logger),
	}, nil
}

func (m *Manager) InvestmentStore() interfaces.InvestmentStore {
	return m.investments
}

func (m *Manager) RateStore() interfaces.RateStore {
	return m.rates
}

func (m *Manager) BillStore() interfaces.BillStore {
	return m.bills
}

// DataPath returns the base data directory path.
func (m *Manager) DataPath() string {
	return m.dataPath
}

func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

// WriteRaw writes arbitrary binary data to a subdirectory atomically.
func (m *Manager) WriteRaw(subdir, key string, data []byte) error {
	dir := filepath.Join(m.dataPath, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	target := filepath.Join(dir, sanitizeKey(key))

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// ReadRaw reads back a file written with WriteRaw.
func (m *Manager) ReadRaw(subdir, key string) ([]byte, error) {
	path := filepath.Join(m.dataPath, subdir, sanitizeKey(key))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("'%s' not found", key)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	return m.db.Close()
}
