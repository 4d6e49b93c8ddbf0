package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/asset-inventory/internal/domain"
	apperrors "github.com/spec-kit/asset-inventory/pkg/util"
)

// AssetFilter captures listing parameters.
type AssetFilter struct {
	Status       *domain.AssetStatus
	Type         *domain.AssetType
	AssignedTo   *int64
	Manufacturer *string
	Limit        int
	Offset       int
}

// AssetRepository encapsulates asset persistence.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	Update(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id int64) (*domain.Asset, error)
	List(ctx context.Context, filter AssetFilter) ([]domain.Asset, error)
	Delete(ctx context.Context, id int64) error
}

type assetRepository struct {
	db DB
}

// NewAssetRepository instantiates repository.
func NewAssetRepository(db DB) AssetRepository {
	return &assetRepository{db: db}
}

const assetColumns = `id, asset_type, status, assigned_to, date_in_service,
               manufacturer, model, serial_number, asset_tag, location,
               product_name, license_key, version, renewal_date,
               repair_notes, created_at, updated_at`

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	const query = `
        INSERT INTO assets (asset_type, status, assigned_to, manufacturer, model, serial_number,
                            asset_tag, location, product_name, license_key, version, renewal_date, repair_notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, date_in_service, created_at, updated_at`

	physical := asset.Physical
	if physical == nil {
		physical = &domain.PhysicalDetails{}
	}
	digital := asset.Digital
	if digital == nil {
		digital = &domain.DigitalDetails{}
	}

	err := r.db.QueryRow(ctx, query,
		asset.Type,
		asset.Status,
		asset.AssignedTo,
		physical.Manufacturer,
		physical.Model,
		physical.SerialNumber,
		physical.AssetTag,
		physical.Location,
		digital.ProductName,
		digital.LicenseKey,
		digital.Version,
		digital.RenewalDate,
		asset.RepairNotes,
	).Scan(&asset.ID, &asset.DateInService, &asset.CreatedAt, &asset.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return apperrors.NewValidationError("serial number already in use", map[string]any{
				"serial_number": physical.SerialNumber,
			})
		}
		return err
	}
	return nil
}

func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	const query = `
        UPDATE assets SET status=$1, assigned_to=$2, repair_notes=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.db.Exec(ctx, query,
		asset.Status,
		asset.AssignedTo,
		asset.RepairNotes,
		asset.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	query := fmt.Sprintf(`SELECT %s FROM assets WHERE id=$1`, assetColumns)
	return scanAsset(r.db.QueryRow(ctx, query, id))
}

func (r *assetRepository) List(ctx context.Context, filter AssetFilter) ([]domain.Asset, error) {
	base := fmt.Sprintf(`SELECT %s FROM assets`, assetColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("asset_type=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.Manufacturer != nil && strings.TrimSpace(*filter.Manufacturer) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Manufacturer))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(manufacturer) LIKE $%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC`, base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query = fmt.Sprintf("%s LIMIT %d OFFSET %d", query, filter.Limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *asset)
	}
	return result, rows.Err()
}

func (r *assetRepository) Delete(ctx context.Context, id int64) error {
	// Tickets and audit logs are removed by the ON DELETE CASCADE constraints.
	cmd, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// scanAsset reads the flat column set and rebuilds the tagged variant.
func scanAsset(row rowScanner) (*domain.Asset, error) {
	var (
		asset    domain.Asset
		physical domain.PhysicalDetails
		digital  domain.DigitalDetails
	)
	if err := row.Scan(
		&asset.ID,
		&asset.Type,
		&asset.Status,
		&asset.AssignedTo,
		&asset.DateInService,
		&physical.Manufacturer,
		&physical.Model,
		&physical.SerialNumber,
		&physical.AssetTag,
		&physical.Location,
		&digital.ProductName,
		&digital.LicenseKey,
		&digital.Version,
		&digital.RenewalDate,
		&asset.RepairNotes,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	); err != nil {
		return nil, err
	}

	switch asset.Type {
	case domain.AssetTypePhysical:
		asset.Physical = &physical
	case domain.AssetTypeDigital:
		asset.Digital = &digital
	}
	return &asset, nil
}
