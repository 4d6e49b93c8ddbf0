package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/asset-inventory/internal/domain"
)

// SupportTicketRepository encapsulates ticket persistence.
type SupportTicketRepository interface {
	Create(ctx context.Context, ticket *domain.SupportTicket) error
	Update(ctx context.Context, ticket *domain.SupportTicket) error
	GetByID(ctx context.Context, id int64) (*domain.SupportTicket, error)
	ListByAsset(ctx context.Context, assetID int64) ([]domain.SupportTicket, error)
}

type supportTicketRepository struct {
	db DB
}

// NewSupportTicketRepository instantiates repository.
func NewSupportTicketRepository(db DB) SupportTicketRepository {
	return &supportTicketRepository{db: db}
}

func (r *supportTicketRepository) Create(ctx context.Context, ticket *domain.SupportTicket) error {
	const query = `
        INSERT INTO support_tickets (asset_id, created_by, title, description, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		ticket.AssetID,
		ticket.CreatedBy,
		ticket.Title,
		ticket.Description,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *supportTicketRepository) Update(ctx context.Context, ticket *domain.SupportTicket) error {
	const query = `
        UPDATE support_tickets SET status=$1, resolved_at=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.db.Exec(ctx, query, ticket.Status, ticket.ResolvedAt, ticket.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *supportTicketRepository) GetByID(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	const query = `
        SELECT id, asset_id, created_by, title, description, status, created_at, updated_at, resolved_at
        FROM support_tickets WHERE id=$1`

	var ticket domain.SupportTicket
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.AssetID,
		&ticket.CreatedBy,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ResolvedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *supportTicketRepository) ListByAsset(ctx context.Context, assetID int64) ([]domain.SupportTicket, error) {
	const query = `
        SELECT id, asset_id, created_by, title, description, status, created_at, updated_at, resolved_at
        FROM support_tickets WHERE asset_id=$1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SupportTicket
	for rows.Next() {
		var ticket domain.SupportTicket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.AssetID,
			&ticket.CreatedBy,
			&ticket.Title,
			&ticket.Description,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.ResolvedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
