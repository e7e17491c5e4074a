package sqlite

import (
	"fmt"
	"time"

	"github.com/mandalnilabja/mpgconverter/internal/storage/models"
)

// LogRequest stores a request log entry
func (s *Storage) LogRequest(log *models.RequestLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	if log.Unit == "" || log.Outcome == "" {
		return fmt.Errorf("%w: unit and outcome are required", ErrInvalidInput)
	}
	if log.ID == "" {
		log.ID = generateID("log")
	}
	if log.Channel == "" {
		log.Channel = models.ChannelAPI
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	log.CreatedAt = log.CreatedAt.UTC()

	_, err := s.db.Exec(`
		INSERT INTO request_logs (id, request_id, unit, channel, outcome,
			status_code, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, log.ID, log.RequestID, log.Unit, log.Channel, log.Outcome,
		log.StatusCode, log.DurationMs, log.CreatedAt)

	return err
}

// GetRequestLogs retrieves request logs with filtering, newest first
func (s *Storage) GetRequestLogs(filter models.LogFilter) ([]*models.RequestLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	query := `SELECT id, request_id, unit, channel, outcome,
		COALESCE(status_code, 0), COALESCE(duration_ms, 0), created_at
		FROM request_logs WHERE 1=1`

	var args []interface{}

	if filter.Unit != "" {
		query += " AND unit = ?"
		args = append(args, filter.Unit)
	}
	if filter.Channel != "" {
		query += " AND channel = ?"
		args = append(args, filter.Channel)
	}
	if filter.Outcome != "" {
		query += " AND outcome = ?"
		args = append(args, filter.Outcome)
	}
	if filter.StatusCode != nil {
		query += " AND status_code = ?"
		args = append(args, *filter.StatusCode)
	}
	if filter.StartDate != nil {
		query += " AND DATE(created_at) >= ?"
		args = append(args, dayString(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query += " AND DATE(created_at) <= ?"
		args = append(args, dayString(*filter.EndDate))
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.RequestLog
	for rows.Next() {
		var log models.RequestLog

		err := rows.Scan(&log.ID, &log.RequestID, &log.Unit, &log.Channel, &log.Outcome,
			&log.StatusCode, &log.DurationMs, &log.CreatedAt)
		if err != nil {
			return nil, err
		}

		logs = append(logs, &log)
	}

	return logs, rows.Err()
}

// DeleteRequestLogs removes logs older than the specified date (YYYY-MM-DD)
func (s *Storage) DeleteRequestLogs(olderThan string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStorageClosed
	}

	if _, err := time.Parse("2006-01-02", olderThan); err != nil {
		return 0, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	result, err := s.db.Exec("DELETE FROM request_logs WHERE DATE(created_at) < ?", olderThan)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
