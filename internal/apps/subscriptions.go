package apps

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"appdeck/internal/models"
	"appdeck/internal/plans"
)

// Subscriptions manages the single subscription attached to each app. All
// operations are scoped by app ownership; a foreign app surfaces as
// ErrNotFound, never as a permission error.
type Subscriptions struct {
	db *gorm.DB
}

func NewSubscriptions(db *gorm.DB) *Subscriptions {
	return &Subscriptions{db: db}
}

// UpsertPlan moves the app's subscription to planName, creating the
// subscription row if the app somehow lacks one. The row is updated in
// place, marked active, and any deactivation end date is cleared.
func (s *Subscriptions) UpsertPlan(appID, ownerID uint, planName models.PlanName) (*models.Subscription, error) {
	if !planName.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownPlan, planName)
	}

	var sub models.Subscription
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ownedApp(tx, appID, ownerID); err != nil {
			return err
		}
		plan, err := plans.GetOrCreateTx(tx, planName)
		if err != nil {
			return err
		}

		err = tx.Where("app_id = ?", appID).First(&sub).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			sub = models.Subscription{AppID: appID, PlanID: plan.ID, Active: true}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			sub.PlanID = plan.ID
			sub.Active = true
			sub.EndDate = nil
			if err := tx.Save(&sub).Error; err != nil {
				return err
			}
		}
		sub.Plan = *plan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Deactivate marks the app's subscription inactive and stamps its end date.
// The row is kept; this is a soft state change, not a deletion.
func (s *Subscriptions) Deactivate(appID, ownerID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ownedApp(tx, appID, ownerID); err != nil {
			return err
		}
		if err := tx.Where("app_id = ?", appID).First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoSubscription
			}
			return err
		}
		now := time.Now()
		sub.Active = false
		sub.EndDate = &now
		if err := tx.Save(&sub).Error; err != nil {
			return err
		}
		return tx.First(&sub.Plan, sub.PlanID).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ownedApp verifies that appID exists and belongs to ownerID.
func ownedApp(tx *gorm.DB, appID, ownerID uint) error {
	var app models.App
	err := tx.Where("id = ? AND user_id = ?", appID, ownerID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
