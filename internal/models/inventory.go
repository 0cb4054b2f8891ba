package models

import "time"

// InventoryItem represents one physical food item tracked in the fridge
type InventoryItem struct {
	ID         string    `json:"id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	Quantity   string    `json:"quantity"`
	ExpiryDate string    `json:"expiryDate" validate:"required,calendardate"`
	Category   string    `json:"category" validate:"required"`
	Fragility  int       `json:"fragility" validate:"min=1,max=10"`
	AddedAt    time.Time `json:"addedAt"`
}

// Inventory categories. Category is an open string on InventoryItem; these
// labels are the suggested set and unknown labels are kept as-is.
const (
	CategoryProduce   = "Produce"
	CategoryDairy     = "Dairy"
	CategoryMeat      = "Meat"
	CategoryBeverage  = "Beverage"
	CategoryCondiment = "Condiment"
	CategoryLeftover  = "Leftover"
	CategoryOther     = "Other"
)

// Categories lists the suggested category labels in display order.
var Categories = []string{
	CategoryProduce,
	CategoryDairy,
	CategoryMeat,
	CategoryBeverage,
	CategoryCondiment,
	CategoryLeftover,
	CategoryOther,
}

// IsKnownCategory reports whether c is one of the suggested labels.
func IsKnownCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ExpiryStatus classifies how close an item is to its expiry date
type ExpiryStatus string

const (
	ExpiryExpired ExpiryStatus = "expired"
	ExpiryUrgent  ExpiryStatus = "urgent"
	ExpiryOK      ExpiryStatus = "ok"
)

// Fragility bounds
const (
	MinFragility = 1
	MaxFragility = 10
)
