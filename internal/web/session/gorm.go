package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/botpanel/botpanel/internal/db/models"
)

// GormStorage is a fiber.Storage on the sessions table, used where no
// dedicated gofiber storage driver exists for the engine.
type GormStorage struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStorage creates a storage on db. The sessions table must be migrated.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db, now: time.Now}
}

// Get returns the value for key, nil when missing or expired.
func (s *GormStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	var row models.Session

	err := s.db.Where("session_key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if row.ExpiresAt != nil && !row.ExpiresAt.After(s.now()) {
		return nil, nil
	}

	return row.Value, nil
}

// Set stores val under key. A zero exp never expires.
func (s *GormStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	row := models.Session{Key: key, Value: val}

	if exp > 0 {
		expiresAt := s.now().Add(exp).UTC()
		row.ExpiresAt = &expiresAt
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
	}).Create(&row).Error
}

// Delete removes key.
func (s *GormStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	return s.db.Where("session_key = ?", key).Delete(&models.Session{}).Error
}

// Reset removes every session.
func (s *GormStorage) Reset() error {
	return s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Session{}).Error
}

// Close is a no-op, the database handle belongs to the caller.
func (s *GormStorage) Close() error {
	return nil
}

// GC removes expired sessions and returns how many were deleted.
func (s *GormStorage) GC() (int64, error) {
	result := s.db.Where("expires_at IS NOT NULL AND expires_at <= ?", s.now().UTC()).Delete(&models.Session{})

	return result.RowsAffected, result.Error
}

// RunGC removes expired sessions every interval until ctx is done.
func (s *GormStorage) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.GC()
			if err != nil {
				log.Error().Err(err).Msg("session gc failed")
				continue
			}

			if removed > 0 {
				log.Debug().Int64("removed", removed).Msg("expired sessions removed")
			}
		}
	}
}
