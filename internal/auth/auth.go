package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dishoutapp/dishout/internal/kvstore"
)

const documentName = "dishout_user"

// User is the mock authenticated identity. There is no real credential
// check; the identity exists so leads can carry a user email.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

var ErrInvalidEmail = errors.New("a valid email address is required")

// Service keeps the current user in a fixed-name persisted document.
type Service struct {
	kv *kvstore.Store
}

func NewService(kv *kvstore.Store) *Service {
	return &Service{kv: kv}
}

// Login replaces the current user with a mock identity derived from the
// email address.
func (s *Service) Login(ctx context.Context, email string) (*User, error) {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return nil, ErrInvalidEmail
	}

	user := &User{
		UID:         "user_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:9],
		Email:       email,
		DisplayName: email[:at],
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.kv.Put(ctx, documentName, string(payload)); err != nil {
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}

	return user, nil
}

// Current returns the persisted user, or nil when nobody is logged in.
func (s *Service) Current(ctx context.Context) (*User, error) {
	payload, err := s.kv.Get(ctx, documentName)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var user User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

// Logout clears the persisted user.
func (s *Service) Logout(ctx context.Context) error {
	return s.kv.Delete(ctx, documentName)
}
