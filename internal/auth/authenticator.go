package auth

import (
	"context"

	"github.com/mmynk/tabsplit/internal/models"
)

// Authenticator signs staff in. Passwords are the only implementation; a
// PIN or badge login would be another.
type Authenticator interface {
	// Register creates a staff account. Fails with ErrEmailExists when the
	// email is taken.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the staff member the credentials belong to, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks a credential before it is stored.
	ValidateCredential(credential string) error

	// Lookup returns the user with the given ID, or nil if there is none.
	Lookup(ctx context.Context, id string) (*models.User, error)
}
