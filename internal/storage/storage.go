// Package storage provides the storage interface and implementations.
package storage

import (
	"context"

	"github.com/mandalnilabja/mpgconverter/internal/storage/models"
	"github.com/mandalnilabja/mpgconverter/internal/storage/sqlite"
)

// Re-export types from models package for convenience
type (
	RequestLog  = models.RequestLog
	LogFilter   = models.LogFilter
	DailyUsage  = models.DailyUsage
	UnitStats   = models.UnitStats
	UsageStats  = models.UsageStats
	StatsFilter = models.StatsFilter
)

// Re-export request outcomes and channels
const (
	OutcomeOK           = models.OutcomeOK
	OutcomeInvalidInput = models.OutcomeInvalidInput
	OutcomeUnknownUnit  = models.OutcomeUnknownUnit

	UnitUnknown = models.UnitUnknown

	ChannelAPI  = models.ChannelAPI
	ChannelForm = models.ChannelForm
)

// Re-export errors from sqlite package
var (
	ErrNotFound      = sqlite.ErrNotFound
	ErrInvalidInput  = sqlite.ErrInvalidInput
	ErrStorageClosed = sqlite.ErrStorageClosed
)

// Storage defines the interface for persistent data storage
type Storage interface {
	// Request logging operations
	LogRequest(log *models.RequestLog) error
	GetRequestLogs(filter models.LogFilter) ([]*models.RequestLog, error)
	DeleteRequestLogs(olderThan string) (int64, error)

	// Usage statistics operations
	GetUsageStats(filter models.StatsFilter) (*models.UsageStats, error)
	GetDailyUsage(startDate, endDate string) ([]*models.DailyUsage, error)
	UpdateDailyUsage(usage *models.DailyUsage) error

	// Admin password operations
	GetAdminPasswordHash() (string, error)
	SetAdminPasswordHash(hash string) error
	HasAdminPassword() (bool, error)

	// Maintenance operations
	Ping(ctx context.Context) error
	Close() error
}

// NewSQLiteStorage creates a new SQLite storage instance
// This is the main factory function for creating storage
func NewSQLiteStorage(dbPath string) (Storage, error) {
	return sqlite.New(dbPath)
}
