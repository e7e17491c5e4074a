package sqlite

import (
	"fmt"

	"github.com/mandalnilabja/mpgconverter/internal/storage/models"
)

// UpdateDailyUsage upserts daily usage data, adding to existing counters
func (s *Storage) UpdateDailyUsage(usage *models.DailyUsage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	if usage.Date == "" || usage.Unit == "" {
		return fmt.Errorf("%w: date and unit are required", ErrInvalidInput)
	}

	_, err := s.db.Exec(`
		INSERT INTO usage_daily (date, unit, request_count, invalid_count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date, unit) DO UPDATE SET
			request_count = request_count + excluded.request_count,
			invalid_count = invalid_count + excluded.invalid_count
	`, usage.Date, usage.Unit, usage.RequestCount, usage.InvalidCount)

	return err
}
