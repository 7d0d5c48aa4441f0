// AngelaMos | 2026
// layout.go

package dashboard

const MobileBreakpoint = 768

type LayoutMode string

const (
	LayoutMobile  LayoutMode = "mobile"
	LayoutDesktop LayoutMode = "desktop"
)

type Layout struct {
	Width int        `json:"width"`
	Mode  LayoutMode `json:"mode"`
}

func HandleResize(width int) Layout {
	if width <= MobileBreakpoint {
		return Layout{Width: width, Mode: LayoutMobile}
	}
	return Layout{Width: width, Mode: LayoutDesktop}
}
