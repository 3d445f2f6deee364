package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to create a new account.
type RegisterInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignInInput defines the data required to sign in to an existing account.
type SignInInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// SessionOutput returns the session established by a successful register or sign-in.
type SessionOutput struct {
	Session *entity.Session `json:"session"`
}

// AuthUsecase defines the interface for account-related business operations.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*SessionOutput, error)
	SignIn(ctx context.Context, input *SignInInput) (*SessionOutput, error)

	// SignOut clears the current session. It is idempotent.
	SignOut(ctx context.Context) error

	// CurrentSession returns the active session, or nil when anonymous.
	CurrentSession(ctx context.Context) (*entity.Session, error)

	// Flush re-persists the full account state; called once on shutdown.
	Flush(ctx context.Context) error
}
