// Package plans materializes catalog rows for the fixed pricing tiers.
package plans

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"appdeck/internal/models"
)

// Catalog hands out Plan rows by name. Rows are created on first reference,
// so the table never needs seeding; canonical names and prices live in the
// models.PlanName enum.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// GetOrCreate returns the catalog row for name, creating it if absent.
// Names outside the fixed enum are rejected before touching the table.
func (c *Catalog) GetOrCreate(name models.PlanName) (*models.Plan, error) {
	return GetOrCreateTx(c.db, name)
}

// GetOrCreateTx is the form used by callers that already hold a transaction
// handle, so the lookup joins a larger atomic operation.
func GetOrCreateTx(tx *gorm.DB, name models.PlanName) (*models.Plan, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownPlan, name)
	}
	var plan models.Plan
	err := tx.Where("name = ?", name).First(&plan).Error
	if err == nil {
		return &plan, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	plan = models.Plan{Name: name}
	if err := tx.Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}
