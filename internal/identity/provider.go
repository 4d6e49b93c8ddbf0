// Package identity resolves usernames to directory accounts. Real credential
// verification belongs to an external identity platform; the service only
// depends on the Provider interface.
package identity

import (
	"context"

	"github.com/spec-kit/asset-inventory/internal/domain"
)

// Account is a directory entry as seen by this service.
type Account struct {
	ID       int64
	Username string
	Name     string
	Role     domain.Role
}

// Provider resolves and lists accounts. Implementations decide whether the
// password is actually checked.
type Provider interface {
	Authenticate(ctx context.Context, username, password string) (*Account, error)
	List(ctx context.Context) ([]Account, error)
}
