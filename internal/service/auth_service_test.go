package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/asset-inventory/internal/domain"
	"github.com/spec-kit/asset-inventory/internal/identity"
	"github.com/spec-kit/asset-inventory/internal/repository"
	"github.com/spec-kit/asset-inventory/internal/service"
)

type memProfileRepo struct {
	profiles map[int64]domain.UserProfile
	upserts  int
	failList bool
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[int64]domain.UserProfile)}
}

func (r *memProfileRepo) Upsert(_ context.Context, profile *domain.UserProfile) error {
	r.upserts++
	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *memProfileRepo) GetByUser(_ context.Context, userID int64) (*domain.UserProfile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &profile, nil
}

func (r *memProfileRepo) List(_ context.Context) ([]domain.UserProfile, error) {
	if r.failList {
		return nil, errors.New("connection refused")
	}
	var result []domain.UserProfile
	for _, profile := range r.profiles {
		result = append(result, profile)
	}
	return result, nil
}

func newAuthFixture(t *testing.T, profiles repository.ProfileRepository) *service.AuthService {
	t.Helper()
	provider, err := identity.NewDemoProvider(false, "", 0)
	require.NoError(t, err)
	tokens := identity.NewTokenManager("test-secret", 30)
	return service.NewAuthService(provider, profiles, tokens, zap.NewNop())
}

func TestAuthServiceFirstLoginCreatesProfile(t *testing.T) {
	profiles := newMemProfileRepo()
	auth := newAuthFixture(t, profiles)

	account, token, expiresAt, err := auth.Login(context.Background(), "janesmith", "x")
	require.NoError(t, err)
	assert.Equal(t, int64(4), account.ID)
	assert.Equal(t, domain.RoleUser, account.Role)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	require.Contains(t, profiles.profiles, int64(4))
	assert.Equal(t, domain.RoleUser, profiles.profiles[4].Role)
	assert.Equal(t, 1, profiles.upserts)
}

func TestAuthServiceLoginPrefersStoredRole(t *testing.T) {
	profiles := newMemProfileRepo()
	profiles.profiles[4] = domain.UserProfile{UserID: 4, Role: domain.RoleTechnician}
	auth := newAuthFixture(t, profiles)

	account, _, _, err := auth.Login(context.Background(), "janesmith", "x")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTechnician, account.Role)
	// The stored profile is authoritative; the login must not write it back.
	assert.Equal(t, 0, profiles.upserts)
}

func TestAuthServiceListAccountsOverlaysStoredRoles(t *testing.T) {
	profiles := newMemProfileRepo()
	profiles.profiles[4] = domain.UserProfile{UserID: 4, Role: domain.RoleAdmin}
	auth := newAuthFixture(t, profiles)

	accounts, err := auth.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 4)

	byID := make(map[int64]identity.Account, len(accounts))
	for _, account := range accounts {
		byID[account.ID] = account
	}
	assert.Equal(t, domain.RoleAdmin, byID[4].Role)
	assert.Equal(t, domain.RoleAdmin, byID[1].Role)
	assert.Equal(t, domain.RoleUser, byID[3].Role)
}

func TestAuthServiceListAccountsSurvivesProfileFailure(t *testing.T) {
	profiles := newMemProfileRepo()
	profiles.failList = true
	auth := newAuthFixture(t, profiles)

	accounts, err := auth.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 4)
}

func TestAuthServiceWorksWithoutProfileStore(t *testing.T) {
	auth := newAuthFixture(t, nil)

	account, token, _, err := auth.Login(context.Background(), "admin", "x")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, account.Role)
	assert.NotEmpty(t, token)

	accounts, err := auth.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 4)
}
