// AngelaMos | 2026
// notify.go

package dashboard

import (
	"time"
)

// NoticeTTL is how long an error notice stays up before auto-dismissing.
const NoticeTTL = 5 * time.Second

type NoticeKind string

const (
	NoticeError      NoticeKind = "error"
	NoticeComingSoon NoticeKind = "coming_soon"
)

const (
	MsgInitFailed        = "Failed to initialize dashboard"
	MsgRenderFailed      = "Failed to display profile information."
	MsgRefreshFailed     = "Failed to refresh profile data."
	MsgUnknownSection    = "Unknown page section"
	MsgEditDenied        = "You do not have permission to edit the profile."
	MsgExportDenied      = "You do not have permission to export profile data."
	MsgNoProfileToExport = "No profile data to export."
	MsgExportFailed      = "Failed to export profile data."

	comingSoonDetail = "This feature will be available in a future update."
)

// Notice is a transient user-facing message. Error notices carry a fixed
// DismissAt; coming-soon notices wait for the user.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	Detail    string     `json:"detail,omitempty"`
	DismissAt *time.Time `json:"dismissAt,omitempty"`
}

func errorNotice(message string, now time.Time) *Notice {
	dismissAt := now.Add(NoticeTTL)
	return &Notice{
		Kind:      NoticeError,
		Message:   message,
		DismissAt: &dismissAt,
	}
}

func comingSoonNotice(feature string) *Notice {
	return &Notice{
		Kind:    NoticeComingSoon,
		Message: feature + " feature is coming soon!",
		Detail:  comingSoonDetail,
	}
}
