// Package apps implements the owner-scoped app registry and the subscription
// lifecycle attached to each app.
package apps

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"appdeck/internal/models"
	"appdeck/internal/plans"
)

var (
	// ErrNotFound covers both an unknown app id and an app owned by someone
	// else, so responses never reveal whether a foreign resource exists.
	ErrNotFound = errors.New("app not found")

	// ErrNameRequired is returned when an app name is missing or blank.
	ErrNameRequired = errors.New("app name is required")

	// ErrNoSubscription is returned when an app has no subscription row.
	ErrNoSubscription = errors.New("no subscription for app")
)

// Update carries the optional fields of a partial app update. Nil means
// "leave unchanged".
type Update struct {
	Name        *string
	Description *string
}

// Registry is the CRUD surface over apps. Every operation is scoped to the
// owning user.
type Registry struct {
	db *gorm.DB
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// List returns all apps owned by ownerID, subscriptions included.
func (r *Registry) List(ownerID uint) ([]models.App, error) {
	var out []models.App
	err := r.db.Preload("Subscription.Plan").
		Where("user_id = ?", ownerID).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create registers an app for ownerID and provisions its FREE subscription
// in the same transaction, so no reader ever sees an app without one.
func (r *Registry) Create(ownerID uint, name, description string) (*models.App, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	app := models.App{Name: name, Description: description, UserID: ownerID}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&app).Error; err != nil {
			return err
		}
		plan, err := plans.GetOrCreateTx(tx, models.PlanFree)
		if err != nil {
			return err
		}
		sub := models.Subscription{AppID: app.ID, PlanID: plan.ID, Active: true}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		sub.Plan = *plan
		app.Subscription = &sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Get returns the app with id if it belongs to ownerID.
func (r *Registry) Get(id, ownerID uint) (*models.App, error) {
	var app models.App
	err := r.db.Preload("Subscription.Plan").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Update applies the supplied fields to an owned app. Fields left nil keep
// their current value.
func (r *Registry) Update(id, ownerID uint, upd Update) (*models.App, error) {
	fields := map[string]any{}
	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, ErrNameRequired
		}
		fields["name"] = *upd.Name
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}

	app, err := r.Get(id, ownerID)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return app, nil
	}
	if err := r.db.Model(app).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.Get(id, ownerID)
}

// Delete removes an owned app together with its subscription.
func (r *Registry) Delete(id, ownerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var app models.App
		err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&app).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("app_id = ?", app.ID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		return tx.Delete(&app).Error
	})
}
