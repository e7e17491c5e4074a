package sqlite

import "fmt"

// migrations are applied in order; PRAGMA user_version records how many ran.
var migrations = []string{
	// 1: initial schema
	`
	CREATE TABLE IF NOT EXISTS request_logs (
		id          TEXT PRIMARY KEY,
		request_id  TEXT NOT NULL,
		unit        TEXT NOT NULL,
		channel     TEXT NOT NULL,
		outcome     TEXT NOT NULL,
		status_code INTEGER,
		duration_ms INTEGER,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS usage_daily (
		date          TEXT NOT NULL,
		unit          TEXT NOT NULL,
		request_count INTEGER DEFAULT 0,
		invalid_count INTEGER DEFAULT 0,
		PRIMARY KEY (date, unit)
	);

	CREATE TABLE IF NOT EXISTS admin_settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`,
	// 2: lookup indexes for the admin log and usage queries
	`
	CREATE INDEX IF NOT EXISTS idx_logs_created ON request_logs(created_at);
	CREATE INDEX IF NOT EXISTS idx_logs_unit ON request_logs(unit);
	CREATE INDEX IF NOT EXISTS idx_usage_date ON usage_daily(date);
	`,
}

// schemaVersion returns the number of migrations already applied.
func (s *Storage) schemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	return version, err
}

// migrate applies pending migrations, each in its own transaction.
func (s *Storage) migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	version, err := s.schemaVersion()
	if err != nil {
		return err
	}

	for i := version; i < len(migrations); i++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}
