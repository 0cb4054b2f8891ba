package inventory

import (
	"math"
	"time"

	"fridjy/internal/models"
)

// UrgentWithinDays is the inclusive horizon for the urgent classification.
const UrgentWithinDays = 2

// DaysUntilExpiry returns ceil((expiry - now) / 24h), with the expiry date
// taken as UTC midnight.
func DaysUntilExpiry(now time.Time, expiryDate string) (int, error) {
	exp, err := models.ParseDate(expiryDate)
	if err != nil {
		return 0, err
	}
	days := float64(exp.Sub(now)) / float64(24*time.Hour)
	return int(math.Ceil(days)), nil
}

// Classify maps a days-until-expiry value to its status.
func Classify(days int) models.ExpiryStatus {
	switch {
	case days < 0:
		return models.ExpiryExpired
	case days <= UrgentWithinDays:
		return models.ExpiryUrgent
	default:
		return models.ExpiryOK
	}
}

// ItemView is an inventory item annotated with its expiry standing.
type ItemView struct {
	models.InventoryItem
	DaysLeft int                 `json:"daysLeft"`
	Status   models.ExpiryStatus `json:"status"`
}

// Annotate computes the expiry standing of each item at now. Items whose
// expiry date cannot be parsed are reported as ok with zero days left.
func Annotate(now time.Time, items []models.InventoryItem) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		v := ItemView{InventoryItem: it, Status: models.ExpiryOK}
		if days, err := DaysUntilExpiry(now, it.ExpiryDate); err == nil {
			v.DaysLeft = days
			v.Status = Classify(days)
		}
		out = append(out, v)
	}
	return out
}

// ExpiringSoon returns the names of items that are urgent or already
// expired at now, soonest first.
func ExpiringSoon(now time.Time, items []models.InventoryItem) []string {
	var names []string
	for _, v := range Annotate(now, SortByExpiry(items)) {
		if v.Status != models.ExpiryOK {
			names = append(names, v.Name)
		}
	}
	return names
}
