// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create appends a new credentialed user. Duplicate emails are accepted;
// sign-in resolves them by list order.
func (s *Service) Create(
	ctx context.Context,
	email, passwordHash string,
) (*User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id: %w", err)
	}

	user := &User{
		ID:        id.String(),
		Email:     strings.TrimSpace(email),
		Password:  passwordHash,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Append(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// FindByEmail returns every credentialed user with email, in list order.
func (s *Service) FindByEmail(
	ctx context.Context,
	email string,
) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	matches := make([]User, 0, 1)
	for _, u := range users {
		if u.Email == email && u.Password != "" {
			matches = append(matches, u)
		}
	}

	return matches, nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// NewGoogleUser builds a federated record for email. It is not persisted
// in the users list.
func (s *Service) NewGoogleUser(email string) (*User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id: %w", err)
	}

	return &User{
		ID:        "google_" + id.String(),
		Email:     email,
		Provider:  ProviderGoogle,
		CreatedAt: s.now().UTC(),
	}, nil
}

func (s *Service) Guest() *User {
	return Guest(s.now().UTC())
}
