// AngelaMos | 2026
// render.go

package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/carterperez-dev/storefront/internal/profile"
)

const (
	placeholder = "-"

	HoursClosed = "Closed"
	HoursNotSet = "Not set"
)

var dayLabels = map[string]string{
	"monday":    "Monday",
	"tuesday":   "Tuesday",
	"wednesday": "Wednesday",
	"thursday":  "Thursday",
	"friday":    "Friday",
	"saturday":  "Saturday",
	"sunday":    "Sunday",
}

// View is the read-only dashboard rendering of a profile. Empty fields
// read "-".
type View struct {
	StoreName    string               `json:"storeName"`
	BusinessType string               `json:"businessType"`
	Description  string               `json:"description"`
	Phone        string               `json:"phone"`
	Email        string               `json:"email"`
	Website      string               `json:"website"`
	Address      string               `json:"address"`
	Hours        []HoursLine          `json:"hours"`
	UpdatedAt    time.Time            `json:"updatedAt"`
	Warnings     []profile.FieldError `json:"warnings"`
}

type HoursLine struct {
	Day   string `json:"day"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// RenderProfile formats every field of p for display.
func RenderProfile(p *profile.Profile) *View {
	v := &View{
		StoreName:    orPlaceholder(p.StoreName),
		BusinessType: orPlaceholder(FormatBusinessType(p.BusinessType)),
		Description:  orPlaceholder(p.Description),
		Phone:        orPlaceholder(FormatPhone(p.Phone)),
		Email:        orPlaceholder(p.Email),
		Website:      orPlaceholder(FormatWebsite(p.Website)),
		Address:      orPlaceholder(FormatAddress(p)),
		Hours:        make([]HoursLine, 0, len(profile.Weekdays)),
		UpdatedAt:    p.UpdatedAt,
		Warnings:     profile.Validate(p).Errors,
	}

	for _, day := range profile.Weekdays {
		h, ok := p.Hours[day]
		v.Hours = append(v.Hours, HoursLine{
			Day:   day,
			Label: dayLabels[day],
			Text:  FormatHours(h, ok),
		})
	}

	return v
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// FormatBusinessType maps known codes to labels and passes anything else
// through.
func FormatBusinessType(businessType string) string {
	if label, ok := profile.BusinessTypeLabels[businessType]; ok {
		return label
	}
	return businessType
}

// FormatPhone renders exactly ten digits as (AAA) BBB-CCCC and leaves any
// other input unchanged.
func FormatPhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if len(digits) != 10 {
		return phone
	}

	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
}

func FormatWebsite(website string) string {
	if website == "" {
		return ""
	}
	if strings.HasPrefix(website, "http://") || strings.HasPrefix(website, "https://") {
		return website
	}
	return "https://" + website
}

// FormatAddress joins the non-blank address parts with ", ".
func FormatAddress(p *profile.Profile) string {
	parts := make([]string, 0, 5)
	for _, part := range []string{p.Address, p.City, p.State, p.ZipCode, p.Country} {
		if strings.TrimFunc(part, unicode.IsSpace) != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// FormatHours yields exactly one of Closed, an open-close range or Not set.
func FormatHours(h profile.DayHours, present bool) string {
	switch {
	case !present:
		return HoursNotSet
	case h.Closed:
		return HoursClosed
	case h.Open != "" && h.Close != "":
		return FormatTime(h.Open) + " - " + FormatTime(h.Close)
	default:
		return HoursNotSet
	}
}

// FormatTime converts "HH:MM" to a 12-hour clock. Input it cannot parse is
// returned unchanged.
func FormatTime(clock string) string {
	if clock == "" {
		return ""
	}

	hours, minutes, ok := strings.Cut(clock, ":")
	if !ok {
		return clock
	}

	hour, err := strconv.Atoi(hours)
	if err != nil || hour < 0 || hour > 23 {
		return clock
	}

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}

	display := hour % 12
	if display == 0 {
		display = 12
	}

	return fmt.Sprintf("%d:%s %s", display, minutes, suffix)
}
