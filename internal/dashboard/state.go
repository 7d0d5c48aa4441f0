// AngelaMos | 2026
// state.go

package dashboard

import (
	"github.com/carterperez-dev/storefront/internal/page"
)

// State tracks one page load:
// Uninitialized -> LoadingUser -> (Redirecting | UserLoaded) ->
// LoadingProfile -> (Redirecting | ProfileLoaded) -> Rendered.
type State int

const (
	StateUninitialized State = iota
	StateLoadingUser
	StateUserLoaded
	StateLoadingProfile
	StateProfileLoaded
	StateRendered
	StateRedirecting
)

var stateNames = map[State]string{
	StateUninitialized:  "uninitialized",
	StateLoadingUser:    "loading_user",
	StateUserLoaded:     "user_loaded",
	StateLoadingProfile: "loading_profile",
	StateProfileLoaded:  "profile_loaded",
	StateRendered:       "rendered",
	StateRedirecting:    "redirecting",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Reasons a load ends in Redirecting.
const (
	ReasonNoUser         = "no_user"
	ReasonInvalidUser    = "invalid_user"
	ReasonNoProfile      = "no_profile"
	ReasonInvalidProfile = "invalid_profile"
	ReasonStoreFailure   = "store_failure"
)

// LoadResult is the explicit outcome of a load phase. Redirect and Reason
// are set only in StateRedirecting; Alert only for unrecoverable failures.
type LoadResult struct {
	State    State
	Redirect page.Page
	Reason   string
	Alert    string
}

func (r LoadResult) Ready() bool {
	return r.State == StateProfileLoaded || r.State == StateRendered
}

// Failed reports an unrecoverable initialization error.
func (r LoadResult) Failed() bool {
	return r.Reason == ReasonStoreFailure
}
