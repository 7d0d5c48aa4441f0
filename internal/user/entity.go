// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// User is the record kept in the users list and in each client's
// currentUser slot. Password holds an argon2id hash and is empty for guest
// and federated accounts.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	IsGuest   bool      `json:"isGuest"`
	Provider  string    `json:"provider,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	GuestID    = "guest"
	GuestEmail = "guest@example.com"

	ProviderGoogle = "google"
)

func (u *User) HasID() bool {
	return u != nil && u.ID != ""
}

func (u *User) IsFederated() bool {
	return u.Provider != ""
}

// Guest builds the fixed guest record. It is never appended to the users
// list.
func Guest(now time.Time) *User {
	return &User{
		ID:        GuestID,
		Email:     GuestEmail,
		IsGuest:   true,
		CreatedAt: now,
	}
}
