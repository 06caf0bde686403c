package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// PlanName is the closed set of pricing tiers.
type PlanName string

const (
	PlanFree     PlanName = "FREE"
	PlanStandard PlanName = "STANDARD"
	PlanPro      PlanName = "PRO"
)

var ErrUnknownPlan = errors.New("unknown plan")

// PlanNames lists every valid plan name, in ascending price order.
func PlanNames() []PlanName {
	return []PlanName{PlanFree, PlanStandard, PlanPro}
}

// Valid reports whether n is one of the defined plan names.
func (n PlanName) Valid() bool {
	switch n {
	case PlanFree, PlanStandard, PlanPro:
		return true
	}
	return false
}

// PriceOf returns the monthly price for a plan name. Prices are never stored;
// this mapping is the single source of truth.
func PriceOf(n PlanName) (int, error) {
	switch n {
	case PlanFree:
		return 0, nil
	case PlanStandard:
		return 10, nil
	case PlanPro:
		return 25, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlan, n)
}

// Plan is a catalog row for a pricing tier. Rows are created lazily on first
// reference, so the table is a cache of the static PriceOf mapping, not
// authoritative data.
type Plan struct {
	ID   uint     `gorm:"primarykey"`
	Name PlanName `gorm:"uniqueIndex;size:50"`
}

// MarshalJSON includes the computed price alongside the stored fields.
func (p Plan) MarshalJSON() ([]byte, error) {
	price, err := PriceOf(p.Name)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		ID    uint     `json:"id"`
		Name  PlanName `json:"name"`
		Price int      `json:"price"`
	}{p.ID, p.Name, price})
}
