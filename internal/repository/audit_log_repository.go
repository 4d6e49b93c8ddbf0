package repository

import (
	"context"

	"github.com/spec-kit/asset-inventory/internal/domain"
)

// AuditLogRepository stores the append-only trail. No update or delete is
// exposed.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *domain.AuditLog) error
	ListByAsset(ctx context.Context, assetID int64) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	db DB
}

// NewAuditLogRepository instantiates repository.
func NewAuditLogRepository(db DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Append(ctx context.Context, entry *domain.AuditLog) error {
	const query = `
        INSERT INTO audit_logs (asset_id, user_id, action, details)
        VALUES ($1,$2,$3,$4)
        RETURNING id, timestamp`
	return r.db.QueryRow(ctx, query,
		entry.AssetID,
		entry.UserID,
		entry.Action,
		entry.Details,
	).Scan(&entry.ID, &entry.Timestamp)
}

func (r *auditLogRepository) ListByAsset(ctx context.Context, assetID int64) ([]domain.AuditLog, error) {
	const query = `
        SELECT id, asset_id, user_id, action, details, timestamp
        FROM audit_logs WHERE asset_id=$1 ORDER BY timestamp DESC`

	rows, err := r.db.Query(ctx, query, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		if err := rows.Scan(
			&entry.ID,
			&entry.AssetID,
			&entry.UserID,
			&entry.Action,
			&entry.Details,
			&entry.Timestamp,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
