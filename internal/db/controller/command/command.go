// Package command provides CRUD operations for the command catalog.
package command

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/botpanel/botpanel/internal/db/controller"
	"github.com/botpanel/botpanel/internal/db/models"
)

const nameQueryPattern = "name = ?"

var (
	// ErrCommandNotFound is returned when no catalog entry matches.
	ErrCommandNotFound = errors.New("command not found")
	// ErrCommandExists is returned when the name is already taken.
	ErrCommandExists = errors.New("command already exists")
	// ErrCommandNameEmpty is returned when creating an entry without a name.
	ErrCommandNameEmpty = errors.New("command name cannot be empty")
)

// Patch holds the fields of a partial catalog update.
type Patch struct {
	Name        *string                 `json:"name"        validate:"omitnil,min=1,max=32,commandname"`
	Description *string                 `json:"description" validate:"omitnil,max=255"`
	Category    *models.CommandCategory `json:"category"    validate:"omitnil,oneof=general moderation fun utility api core"`
	Usage       *string                 `json:"usage"       validate:"omitnil,max=255"`
	Response    *string                 `json:"response"    validate:"omitnil,max=2000"`
	Enabled     *bool                   `json:"enabled"`
}

// Apply merges the patch over c.
func (p *Patch) Apply(c *models.Command) {
	if p.Name != nil {
		c.Name = Normalize(*p.Name)
	}

	if p.Description != nil {
		c.Description = *p.Description
	}

	if p.Category != nil {
		c.Category = *p.Category
	}

	if p.Usage != nil {
		c.Usage = *p.Usage
	}

	if p.Response != nil {
		c.Response = *p.Response
	}

	if p.Enabled != nil {
		c.Enabled = *p.Enabled
	}
}

// Normalize returns the catalog form of a command name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// List returns every catalog entry ordered by category and name.
func List(db *gorm.DB) ([]models.Command, error) {
	return list(db, false)
}

// ListEnabled returns the enabled catalog entries ordered by category and name.
func ListEnabled(db *gorm.DB) ([]models.Command, error) {
	return list(db, true)
}

func list(db *gorm.DB, enabledOnly bool) ([]models.Command, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var commands []models.Command

	q := db.Order("category").Order("name")
	if enabledOnly {
		q = q.Where("enabled = ?", true)
	}

	if err := q.Find(&commands).Error; err != nil {
		return nil, controller.Unavailable("list commands", err)
	}

	return commands, nil
}

// Get retrieves a catalog entry by its ID.
func Get(db *gorm.DB, id uint) (*models.Command, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var c models.Command

	result := db.First(&c, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCommandNotFound
		}

		return nil, controller.Unavailable("get command", result.Error)
	}

	return &c, nil
}

// GetByName retrieves a catalog entry by its name, case-insensitively.
func GetByName(db *gorm.DB, name string) (*models.Command, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var c models.Command

	result := db.Where(nameQueryPattern, Normalize(name)).First(&c)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCommandNotFound
		}

		return nil, controller.Unavailable("get command by name", result.Error)
	}

	return &c, nil
}

// Create inserts a new catalog entry. An empty category becomes general.
func Create(db *gorm.DB, c *models.Command) error {
	if db == nil {
		return controller.ErrDBNil
	}

	c.Name = Normalize(c.Name)
	if c.Name == "" {
		return ErrCommandNameEmpty
	}

	if c.Category == "" {
		c.Category = models.CategoryGeneral
	}

	if err := ensureUnique(db, c.Name, 0); err != nil {
		return err
	}

	if err := db.Create(c).Error; err != nil {
		return controller.Unavailable("create command", err)
	}

	return nil
}

// Update applies the patch to the entry with the given ID and returns it.
func Update(db *gorm.DB, id uint, patch Patch) (*models.Command, error) {
	c, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(c)

	if c.Name == "" {
		return nil, ErrCommandNameEmpty
	}

	if err = ensureUnique(db, c.Name, c.ID); err != nil {
		return nil, err
	}

	if err = db.Save(c).Error; err != nil {
		return nil, controller.Unavailable("update command", err)
	}

	return c, nil
}

// Delete removes the entry with the given ID.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return controller.ErrDBNil
	}

	result := db.Delete(&models.Command{}, id)
	if result.Error != nil {
		return controller.Unavailable("delete command", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrCommandNotFound
	}

	return nil
}

// Seed inserts the entries whose names are not yet in the catalog.
// Existing entries are left as the dashboard edited them.
func Seed(db *gorm.DB, entries []models.Command) (int, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	created := 0

	for i := range entries {
		entry := entries[i]

		err := Create(db, &entry)
		if errors.Is(err, ErrCommandExists) {
			continue
		}

		if err != nil {
			return created, err
		}

		created++
	}

	return created, nil
}

func ensureUnique(db *gorm.DB, name string, selfID uint) error {
	var count int64

	if err := db.Model(&models.Command{}).
		Where(nameQueryPattern, name).
		Where("id <> ?", selfID).
		Count(&count).Error; err != nil {
		return controller.Unavailable("check command name", err)
	}

	if count > 0 {
		return ErrCommandExists
	}

	return nil
}
