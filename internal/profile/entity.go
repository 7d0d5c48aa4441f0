// AngelaMos | 2026
// entity.go

package profile

import (
	"time"
)

// Profile is the per-user store record, written wholesale on every save.
type Profile struct {
	StoreName    string              `json:"storeName"`
	BusinessType string              `json:"businessType"`
	Description  string              `json:"description"`
	Phone        string              `json:"phone"`
	Email        string              `json:"email"`
	Website      string              `json:"website"`
	Address      string              `json:"address"`
	City         string              `json:"city"`
	State        string              `json:"state"`
	ZipCode      string              `json:"zipCode"`
	Country      string              `json:"country"`
	Hours        map[string]DayHours `json:"hours"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// DayHours holds "HH:MM" times. Closed wins over any times present.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

const (
	BusinessRetail      = "retail"
	BusinessRestaurant  = "restaurant"
	BusinessGrocery     = "grocery"
	BusinessPharmacy    = "pharmacy"
	BusinessElectronics = "electronics"
	BusinessClothing    = "clothing"
	BusinessOther       = "other"
)

var BusinessTypeLabels = map[string]string{
	BusinessRetail:      "Retail Store",
	BusinessRestaurant:  "Restaurant",
	BusinessGrocery:     "Grocery Store",
	BusinessPharmacy:    "Pharmacy",
	BusinessElectronics: "Electronics",
	BusinessClothing:    "Clothing",
	BusinessOther:       "Other",
}

// Weekdays is the display order used by the editor and the dashboard.
var Weekdays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
