package repository

import (
	"context"

	"github.com/spec-kit/asset-inventory/internal/domain"
)

// ProfileRepository persists per-user roles. One profile per user.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.UserProfile) error
	GetByUser(ctx context.Context, userID int64) (*domain.UserProfile, error)
	List(ctx context.Context) ([]domain.UserProfile, error)
}

type profileRepository struct {
	db DB
}

// NewProfileRepository instantiates repository.
func NewProfileRepository(db DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	const query = `
        INSERT INTO user_profiles (user_id, role)
        VALUES ($1,$2)
        ON CONFLICT (user_id) DO UPDATE SET role=EXCLUDED.role, updated_at=NOW()
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query, profile.UserID, profile.Role).
		Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByUser(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	const query = `
        SELECT user_id, role, created_at, updated_at
        FROM user_profiles WHERE user_id=$1`

	var profile domain.UserProfile
	if err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Role,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]domain.UserProfile, error) {
	const query = `
        SELECT user_id, role, created_at, updated_at
        FROM user_profiles ORDER BY user_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UserProfile
	for rows.Next() {
		var profile domain.UserProfile
		if err := rows.Scan(
			&profile.UserID,
			&profile.Role,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, rows.Err()
}
