// Package commandlog is the append-only store of command invocation outcomes.
package commandlog

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/botpanel/botpanel/internal/db/controller"
	"github.com/botpanel/botpanel/internal/db/models"
)

const (
	// DefaultListLimit is the number of rows the log viewer returns without an explicit limit.
	DefaultListLimit = 100
	// DefaultAnalyticsLimit is the sample size of the analytics aggregation.
	DefaultAnalyticsLimit = 1000
)

// Entry is the caller supplied part of a log row.
type Entry struct {
	UserID    string
	Username  string
	Command   string
	IsError   bool
	IsWarning bool
	Message   string
}

// clock hands out UTC timestamps that never go backwards within the process.
type clock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func (c *clock) next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC()
	if t.Before(c.last) {
		t = c.last
	}

	c.last = t

	return t
}

var stamps = &clock{now: time.Now}

// Append stores one row with a server assigned timestamp.
func Append(db *gorm.DB, e Entry) (*models.CommandLog, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	row := models.CommandLog{
		Timestamp: stamps.next(),
		UserID:    e.UserID,
		Username:  e.Username,
		Command:   e.Command,
		IsError:   e.IsError,
		IsWarning: e.IsWarning,
		Message:   e.Message,
	}

	if err := db.Create(&row).Error; err != nil {
		return nil, controller.Unavailable("append command log", err)
	}

	return &row, nil
}

// List returns the newest rows first. A limit <= 0 selects DefaultListLimit.
func List(db *gorm.DB, limit int) ([]models.CommandLog, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	if limit <= 0 {
		limit = DefaultListLimit
	}

	logs := make([]models.CommandLog, 0, limit)

	result := db.Order("timestamp DESC").Order("id DESC").Limit(limit).Find(&logs)
	if result.Error != nil {
		return nil, controller.Unavailable("list command logs", result.Error)
	}

	return logs, nil
}
