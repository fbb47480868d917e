package services

import (
	"context"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/famledger/family_finance_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new user with a hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
}

// UserAuthenticatorSvc verifies credentials for the login surface.
type UserAuthenticatorSvc interface {
	// AuthenticateUser checks email/password and returns the user on success.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}

// TokenSvcFacade issues signed tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateToken creates a signed JWT whose subject is the user ID.
	GenerateToken(ctx context.Context, userID string) (string, error)
}
