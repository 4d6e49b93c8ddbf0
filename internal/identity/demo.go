package identity

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/asset-inventory/internal/domain"
	apperrors "github.com/spec-kit/asset-inventory/pkg/util"
)

// defaultAccountID is returned for usernames outside the demo directory.
const defaultAccountID = 3

// DemoProvider serves the fixed demo directory. By default any password is
// accepted; with verification enabled the shared demo password is checked
// via bcrypt. Not a production credential store.
type DemoProvider struct {
	accounts []Account
	verify   bool
	hash     []byte
}

// NewDemoProvider builds the provider. password is only used when verify is
// set; cost falls back to bcrypt.DefaultCost when out of range.
func NewDemoProvider(verify bool, password string, cost int) (*DemoProvider, error) {
	provider := &DemoProvider{
		accounts: []Account{
			{ID: 1, Username: "admin", Name: "Admin User", Role: domain.RoleAdmin},
			{ID: 2, Username: "tech", Name: "Tech User", Role: domain.RoleTechnician},
			{ID: 3, Username: "johndoe", Name: "John Doe", Role: domain.RoleUser},
			{ID: 4, Username: "janesmith", Name: "Jane Smith", Role: domain.RoleUser},
		},
		verify: verify,
	}
	if verify {
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			cost = bcrypt.DefaultCost
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return nil, err
		}
		provider.hash = hash
	}
	return provider, nil
}

// Authenticate resolves the username. Unknown usernames fall back to a
// generic end-user account carrying the given username as display name.
func (p *DemoProvider) Authenticate(ctx context.Context, username, password string) (*Account, error) {
	if p.verify {
		if err := bcrypt.CompareHashAndPassword(p.hash, []byte(password)); err != nil {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
	}

	normalized := strings.ToLower(strings.TrimSpace(username))
	for _, account := range p.accounts {
		if account.Username == normalized {
			resolved := account
			return &resolved, nil
		}
	}
	return &Account{
		ID:       defaultAccountID,
		Username: normalized,
		Name:     username,
		Role:     domain.RoleUser,
	}, nil
}

// List returns the demo directory for assignment pickers.
func (p *DemoProvider) List(ctx context.Context) ([]Account, error) {
	result := make([]Account, len(p.accounts))
	copy(result, p.accounts)
	return result, nil
}
