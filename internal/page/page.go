// AngelaMos | 2026
// page.go

// Package page names the screens a response can send the client to.
package page

type Page string

const (
	StartUp      Page = "startUpPage"
	StoreProfile Page = "storeProfile"
	Dashboard    Page = "dashboard"
)

func (p Page) String() string {
	return string(p)
}

// Valid reports whether p is one of the known screens.
func (p Page) Valid() bool {
	switch p {
	case StartUp, StoreProfile, Dashboard:
		return true
	}
	return false
}
