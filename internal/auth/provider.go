package auth

import (
	"context"
	"errors"
)

// User mirrors the identity provider's session object.
type User struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	PhotoURL      string `json:"photo_url,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

// Provider is the capability surface of the external identity provider.
// Subscribe must invoke the callback once with the current state before
// returning, matching the provider SDK's auth-state listener contract.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*User, error)
	SignUp(ctx context.Context, email, password, displayName string) (*User, error)
	SignOut(ctx context.Context) error
	SendPasswordReset(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, uid, displayName string) error
	Subscribe(fn func(*User)) (unsubscribe func())
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email address")
)
