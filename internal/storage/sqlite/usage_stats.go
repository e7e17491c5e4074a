package sqlite

import "github.com/mandalnilabja/mpgconverter/internal/storage/models"

// GetUsageStats retrieves aggregated usage statistics
func (s *Storage) GetUsageStats(filter models.StatsFilter) (*models.UsageStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	where := " WHERE 1=1"
	var args []interface{}

	if filter.Unit != "" {
		where += " AND unit = ?"
		args = append(args, filter.Unit)
	}
	if filter.StartDate != nil {
		where += " AND date >= ?"
		args = append(args, dayString(*filter.StartDate))
	}
	if filter.EndDate != nil {
		where += " AND date <= ?"
		args = append(args, dayString(*filter.EndDate))
	}

	stats := &models.UsageStats{
		UnitBreakdown: make(map[string]*models.UnitStats),
	}

	err := s.db.QueryRow(`SELECT
		COALESCE(SUM(request_count), 0),
		COALESCE(SUM(invalid_count), 0)
		FROM usage_daily`+where, args...).Scan(
		&stats.TotalRequests,
		&stats.InvalidCount,
	)
	if err != nil {
		return nil, err
	}

	// Get unit breakdown
	rows, err := s.db.Query(`SELECT unit,
		COALESCE(SUM(request_count), 0),
		COALESCE(SUM(invalid_count), 0)
		FROM usage_daily`+where+" GROUP BY unit", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var us models.UnitStats
		if err := rows.Scan(&us.Unit, &us.RequestCount, &us.InvalidCount); err != nil {
			return nil, err
		}
		stats.UnitBreakdown[us.Unit] = &us
	}

	return stats, rows.Err()
}

// GetDailyUsage retrieves daily usage data for a date range
func (s *Storage) GetDailyUsage(startDate, endDate string) ([]*models.DailyUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	rows, err := s.db.Query(`
		SELECT date, unit, request_count, invalid_count
		FROM usage_daily
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, unit ASC
	`, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usage []*models.DailyUsage
	for rows.Next() {
		var u models.DailyUsage
		if err := rows.Scan(&u.Date, &u.Unit, &u.RequestCount, &u.InvalidCount); err != nil {
			return nil, err
		}
		usage = append(usage, &u)
	}

	return usage, rows.Err()
}
