package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-inventory/internal/domain"
	"github.com/spec-kit/asset-inventory/internal/identity"
	"github.com/spec-kit/asset-inventory/internal/repository"
)

// AuthService fronts the identity provider and records profiles at
// onboarding. It owns no credentials itself.
type AuthService struct {
	provider identity.Provider
	profiles repository.ProfileRepository
	tokens   *identity.TokenManager
	logger   *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(provider identity.Provider, profiles repository.ProfileRepository, tokens *identity.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{provider: provider, profiles: profiles, tokens: tokens, logger: logger}
}

// Login resolves the account and issues a session token. A stored profile
// takes precedence over the provider's static role; first logins create the
// profile, best effort, and the directory stays usable without a database.
func (s *AuthService) Login(ctx context.Context, username, password string) (*identity.Account, string, time.Time, error) {
	account, err := s.provider.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if s.profiles != nil {
		if stored, err := s.profiles.GetByUser(ctx, account.ID); err == nil && stored.Role.Valid() {
			account.Role = stored.Role
		} else {
			profile := &domain.UserProfile{UserID: account.ID, Role: account.Role}
			if err := s.profiles.Upsert(ctx, profile); err != nil {
				s.logger.Warn("profile upsert failed", zap.Int64("user_id", account.ID), zap.Error(err))
			}
		}
	}

	token, expiresAt, err := s.tokens.GenerateToken(account)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, expiresAt, nil
}

// ListAccounts returns the directory for assignment pickers, with stored
// profile roles overlaid on the provider's entries.
func (s *AuthService) ListAccounts(ctx context.Context) ([]identity.Account, error) {
	accounts, err := s.provider.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.profiles == nil {
		return accounts, nil
	}

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		s.logger.Warn("profile listing failed", zap.Error(err))
		return accounts, nil
	}
	roles := make(map[int64]domain.Role, len(profiles))
	for _, profile := range profiles {
		roles[profile.UserID] = profile.Role
	}
	for i := range accounts {
		if role, ok := roles[accounts[i].ID]; ok && role.Valid() {
			accounts[i].Role = role
		}
	}
	return accounts, nil
}
