// AngelaMos | 2026
// render_test.go

package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/storefront/internal/profile"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5551234567", "(555) 123-4567"},
		{"555-123-4567", "(555) 123-4567"},
		{"(555) 123 4567", "(555) 123-4567"},
		{"12345", "12345"},
		{"+1 555 123 4567", "+1 555 123 4567"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhone(tt.in))
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"09:00", "9:00 AM"},
		{"00:30", "12:30 AM"},
		{"12:00", "12:00 PM"},
		{"17:45", "5:45 PM"},
		{"23:59", "11:59 PM"},
		{"noon", "noon"},
		{"25:00", "25:00"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.in))
		})
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		name    string
		hours   profile.DayHours
		present bool
		want    string
	}{
		{"missing day", profile.DayHours{}, false, HoursNotSet},
		{"closed wins over times", profile.DayHours{Open: "09:00", Close: "17:00", Closed: true}, true, HoursClosed},
		{"open range", profile.DayHours{Open: "09:00", Close: "17:00"}, true, "9:00 AM - 5:00 PM"},
		{"only open", profile.DayHours{Open: "09:00"}, true, HoursNotSet},
		{"empty", profile.DayHours{}, true, HoursNotSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatHours(tt.hours, tt.present))
		})
	}
}

func TestFormatWebsiteAndBusinessType(t *testing.T) {
	assert.Equal(t, "https://example.com", FormatWebsite("example.com"))
	assert.Equal(t, "http://example.com", FormatWebsite("http://example.com"))
	assert.Equal(t, "https://example.com", FormatWebsite("https://example.com"))
	assert.Empty(t, FormatWebsite(""))

	assert.Equal(t, "Grocery Store", FormatBusinessType(profile.BusinessGrocery))
	assert.Equal(t, "food truck", FormatBusinessType("food truck"))
}

func TestFormatAddress(t *testing.T) {
	p := &profile.Profile{
		Address: "1 Main St",
		City:    "  ",
		State:   "IL",
		ZipCode: "",
		Country: "USA",
	}
	assert.Equal(t, "1 Main St, IL, USA", FormatAddress(p))
	assert.Empty(t, FormatAddress(&profile.Profile{}))
}

func TestRenderProfile(t *testing.T) {
	p := &profile.Profile{
		StoreName:    "Joe's Shop",
		BusinessType: profile.BusinessRetail,
		Phone:        "5551234567",
		Email:        "not-an-email",
		Hours: map[string]profile.DayHours{
			"monday":  {Open: "09:00", Close: "17:00"},
			"tuesday": {Closed: true},
		},
	}

	v := RenderProfile(p)

	assert.Equal(t, "Joe's Shop", v.StoreName)
	assert.Equal(t, "Retail Store", v.BusinessType)
	assert.Equal(t, "-", v.Description)
	assert.Equal(t, "(555) 123-4567", v.Phone)
	assert.Equal(t, "not-an-email", v.Email)
	assert.Equal(t, "-", v.Website)
	assert.Equal(t, "-", v.Address)

	require.Len(t, v.Hours, 7)
	assert.Equal(t, HoursLine{Day: "monday", Label: "Monday", Text: "9:00 AM - 5:00 PM"}, v.Hours[0])
	assert.Equal(t, HoursClosed, v.Hours[1].Text)
	for _, line := range v.Hours[2:] {
		assert.Equal(t, HoursNotSet, line.Text, line.Day)
	}

	assert.Equal(t, []profile.FieldError{
		{Field: "email", Message: profile.MsgInvalidEmail},
	}, v.Warnings)
}

func TestPermissionsFor(t *testing.T) {
	assert.Equal(t, Permissions{}, PermissionsFor(nil))
	assert.Equal(t, Permissions{CanEdit: true}, PermissionsFor(guestUser()))
	assert.Equal(t,
		Permissions{CanEdit: true, CanDelete: true, CanExport: true},
		PermissionsFor(registeredUser()),
	)
}

func TestHandleResize(t *testing.T) {
	assert.Equal(t, LayoutMobile, HandleResize(0).Mode)
	assert.Equal(t, LayoutMobile, HandleResize(768).Mode)
	assert.Equal(t, LayoutDesktop, HandleResize(769).Mode)
	assert.Equal(t, 1280, HandleResize(1280).Width)
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "store-profile-Corner.json", ExportFilename("Corner"))
	assert.Equal(t, "store-profile-export.json", ExportFilename(""))

	e := &Export{Filename: "store-profile-Corner.json"}
	assert.Equal(t, "attachment; filename=store-profile-Corner.json", e.ContentDisposition())
}
