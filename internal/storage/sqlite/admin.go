package sqlite

import (
	"database/sql"
	"errors"
)

const adminPasswordKey = "admin_password_hash"

// getSetting reads one admin setting; a missing key yields "".
func (s *Storage) getSetting(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStorageClosed
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM admin_settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func (s *Storage) setSetting(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO admin_settings (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)

	return err
}

// GetAdminPasswordHash retrieves the stored admin password hash
func (s *Storage) GetAdminPasswordHash() (string, error) {
	return s.getSetting(adminPasswordKey)
}

// SetAdminPasswordHash stores the admin password hash
func (s *Storage) SetAdminPasswordHash(hash string) error {
	if hash == "" {
		return ErrInvalidInput
	}
	return s.setSetting(adminPasswordKey, hash)
}

// HasAdminPassword checks if an admin password has been configured
func (s *Storage) HasAdminPassword() (bool, error) {
	hash, err := s.GetAdminPasswordHash()
	if err != nil {
		return false, err
	}
	return hash != "", nil
}
