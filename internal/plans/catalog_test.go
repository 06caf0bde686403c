package plans

import (
	"errors"
	"testing"

	"appdeck/internal/models"
	"appdeck/internal/storage"
)

func TestCatalog_GetOrCreate(t *testing.T) {
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	catalog := NewCatalog(db)

	plan, err := catalog.GetOrCreate(models.PlanPro)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if plan.Name != models.PlanPro {
		t.Errorf("Plan name = %s, want PRO", plan.Name)
	}

	// Second call returns the same row, not a new one.
	again, err := catalog.GetOrCreate(models.PlanPro)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if again.ID != plan.ID {
		t.Errorf("Second GetOrCreate returned id %d, want %d", again.ID, plan.ID)
	}

	var count int64
	db.Model(&models.Plan{}).Count(&count)
	if count != 1 {
		t.Errorf("Plan row count = %d, want 1", count)
	}
}

func TestCatalog_GetOrCreate_Unknown(t *testing.T) {
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	catalog := NewCatalog(db)

	if _, err := catalog.GetOrCreate("GOLD"); !errors.Is(err, models.ErrUnknownPlan) {
		t.Errorf("GetOrCreate(GOLD) error = %v, want ErrUnknownPlan", err)
	}

	var count int64
	db.Model(&models.Plan{}).Count(&count)
	if count != 0 {
		t.Errorf("Unknown plan should not create rows, got %d", count)
	}
}
