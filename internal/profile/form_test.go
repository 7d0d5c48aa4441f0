// AngelaMos | 2026
// form_test.go

package profile

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForm_FieldNames(t *testing.T) {
	values := url.Values{
		"storeName":     {"Joe's Shop"},
		"businessType":  {"grocery"},
		"city":          {"Springfield"},
		"mondayOpen":    {"09:00"},
		"mondayClose":   {"17:00"},
		"sundayClosed":  {"on"},
		"tuesdayClosed": {""},
	}

	f := ParseForm(values)

	assert.Equal(t, "Joe's Shop", f.StoreName)
	assert.Equal(t, "grocery", f.BusinessType)
	assert.Equal(t, "Springfield", f.City)
	assert.Len(t, f.Days, 7)
	assert.Equal(t, DayFields{Open: "09:00", Close: "17:00"}, f.Days["monday"])
	assert.Equal(t, DayFields{Closed: true, Disabled: true}, f.Days["sunday"])
	assert.False(t, f.Days["tuesday"].Closed)
}

func TestFromProfile_PopulatesEveryField(t *testing.T) {
	p := &Profile{
		StoreName:    "Corner Store",
		BusinessType: BusinessRetail,
		Description:  "Open late",
		Phone:        "5551234567",
		Email:        "shop@example.com",
		Website:      "example.com",
		Address:      "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62701",
		Country:      "US",
		Hours: map[string]DayHours{
			"monday": {Open: "08:00", Close: "20:00"},
			"sunday": {Closed: true},
		},
	}

	f := FromProfile(p)

	assert.Equal(t, "Corner Store", f.StoreName)
	assert.Equal(t, "62701", f.ZipCode)
	assert.Equal(t, DayFields{Open: "08:00", Close: "20:00"}, f.Days["monday"])
	assert.Equal(t, DayFields{Closed: true, Disabled: true}, f.Days["sunday"])
	assert.Equal(t, DayFields{}, f.Days["wednesday"])
}

func TestToggleClosedDay(t *testing.T) {
	f := EmptyForm()
	f.Days["friday"] = DayFields{Open: "10:00", Close: "18:00"}

	require.NoError(t, f.ToggleClosedDay("friday", true))
	assert.Equal(t, DayFields{Closed: true, Disabled: true}, f.Days["friday"])

	require.NoError(t, f.ToggleClosedDay("Friday", false))
	assert.Equal(t, DayFields{}, f.Days["friday"])

	err := f.ToggleClosedDay("funday", true)
	assert.ErrorIs(t, err, ErrUnknownDay)
}

func TestFormToProfile_RoundTrip(t *testing.T) {
	original := Profile{
		StoreName:    "Joe's Shop",
		BusinessType: BusinessRestaurant,
		Email:        "joe@example.com",
		Hours: map[string]DayHours{
			"monday":    {Open: "09:00", Close: "17:00"},
			"tuesday":   {},
			"wednesday": {},
			"thursday":  {},
			"friday":    {},
			"saturday":  {Closed: true},
			"sunday":    {Closed: true},
		},
		UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	got := FromProfile(&original).ToProfile()
	original.UpdatedAt = time.Time{}

	assert.Equal(t, original, got)
}
