// AngelaMos | 2026
// form.go

package profile

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/carterperez-dev/storefront/internal/core"
)

// ErrUnknownDay is returned for a weekday name outside Weekdays.
var ErrUnknownDay = fmt.Errorf("unknown day: %w", core.ErrInvalidInput)

// Form mirrors the editor's input fields. Days is keyed by lowercase
// weekday and always carries all seven entries.
type Form struct {
	StoreName    string               `json:"storeName"`
	BusinessType string               `json:"businessType"`
	Description  string               `json:"description"`
	Phone        string               `json:"phone"`
	Email        string               `json:"email"`
	Website      string               `json:"website"`
	Address      string               `json:"address"`
	City         string               `json:"city"`
	State        string               `json:"state"`
	ZipCode      string               `json:"zipCode"`
	Country      string               `json:"country"`
	Days         map[string]DayFields `json:"days"`
}

// DayFields is one row of the hours grid. Disabled mirrors the closed
// checkbox locking the time inputs.
type DayFields struct {
	Open     string `json:"open"`
	Close    string `json:"close"`
	Closed   bool   `json:"closed"`
	Disabled bool   `json:"disabled"`
}

func EmptyForm() Form {
	f := Form{Days: make(map[string]DayFields, len(Weekdays))}
	for _, day := range Weekdays {
		f.Days[day] = DayFields{}
	}
	return f
}

// FromProfile populates every field of the editor from a stored profile.
func FromProfile(p *Profile) Form {
	f := EmptyForm()
	f.StoreName = p.StoreName
	f.BusinessType = p.BusinessType
	f.Description = p.Description
	f.Phone = p.Phone
	f.Email = p.Email
	f.Website = p.Website
	f.Address = p.Address
	f.City = p.City
	f.State = p.State
	f.ZipCode = p.ZipCode
	f.Country = p.Country

	for _, day := range Weekdays {
		h, ok := p.Hours[day]
		if !ok {
			continue
		}
		f.Days[day] = DayFields{
			Open:     h.Open,
			Close:    h.Close,
			Closed:   h.Closed,
			Disabled: h.Closed,
		}
	}

	return f
}

// ParseForm reads the editor's url-encoded field names: storeName, ...,
// <day>Open, <day>Close and <day>Closed ("on" when checked).
func ParseForm(values url.Values) Form {
	f := EmptyForm()
	f.StoreName = values.Get("storeName")
	f.BusinessType = values.Get("businessType")
	f.Description = values.Get("description")
	f.Phone = values.Get("phone")
	f.Email = values.Get("email")
	f.Website = values.Get("website")
	f.Address = values.Get("address")
	f.City = values.Get("city")
	f.State = values.Get("state")
	f.ZipCode = values.Get("zipCode")
	f.Country = values.Get("country")

	for _, day := range Weekdays {
		closed := isChecked(values.Get(day + "Closed"))
		f.Days[day] = DayFields{
			Open:     values.Get(day + "Open"),
			Close:    values.Get(day + "Close"),
			Closed:   closed,
			Disabled: closed,
		}
	}

	return f
}

func isChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "checked":
		return true
	}
	return false
}

// ToggleClosedDay applies the closed checkbox rule: checking it locks and
// clears that day's times, unchecking unlocks them.
func (f *Form) ToggleClosedDay(day string, closed bool) error {
	day = strings.ToLower(day)
	if !IsWeekday(day) {
		return fmt.Errorf("toggle %q: %w", day, ErrUnknownDay)
	}
	if f.Days == nil {
		f.Days = make(map[string]DayFields, len(Weekdays))
	}

	fields := f.Days[day]
	fields.Closed = closed
	fields.Disabled = closed
	if closed {
		fields.Open = ""
		fields.Close = ""
	}
	f.Days[day] = fields

	return nil
}

// ToProfile maps every field into a profile record. UpdatedAt is left for
// the caller to stamp.
func (f Form) ToProfile() Profile {
	p := Profile{
		StoreName:    f.StoreName,
		BusinessType: f.BusinessType,
		Description:  f.Description,
		Phone:        f.Phone,
		Email:        f.Email,
		Website:      f.Website,
		Address:      f.Address,
		City:         f.City,
		State:        f.State,
		ZipCode:      f.ZipCode,
		Country:      f.Country,
		Hours:        make(map[string]DayHours, len(Weekdays)),
	}

	for _, day := range Weekdays {
		fields := f.Days[day]
		p.Hours[day] = DayHours{
			Open:   fields.Open,
			Close:  fields.Close,
			Closed: fields.Closed,
		}
	}

	return p
}
