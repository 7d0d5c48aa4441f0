// AngelaMos | 2026
// dto.go

package auth

import (
	"github.com/carterperez-dev/storefront/internal/page"
	"github.com/carterperez-dev/storefront/internal/user"
)

type CredentialsRequest struct {
	Email    string `json:"email"    validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type GoogleRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// AuthResponse tells the client which page to show and, when someone is
// logged in, who.
type AuthResponse struct {
	Next page.Page          `json:"next"`
	User *user.UserResponse `json:"user,omitempty"`
}

func toAuthResponse(res *Result) AuthResponse {
	resp := AuthResponse{Next: res.Next}
	if res.User != nil {
		u := user.ToUserResponse(res.User)
		resp.User = &u
	}
	return resp
}
