package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/asset-inventory/internal/domain"
	"github.com/spec-kit/asset-inventory/internal/repository"
)

func TestAuditLogRepositoryAppend(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	actor := int64(1)
	entry := &domain.AuditLog{
		AssetID: 7,
		UserID:  &actor,
		Action:  domain.AuditActionStatusChanged,
		Details: "in_service -> out_repair",
	}

	rows := pgxmock.NewRows([]string{"id", "timestamp"}).AddRow(int64(3), testTime)
	mock.ExpectQuery("INSERT INTO audit_logs").
		WithArgs(int64(7), &actor, domain.AuditActionStatusChanged, "in_service -> out_repair").
		WillReturnRows(rows)

	repo := repository.NewAuditLogRepository(mock)
	err = repo.Append(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, int64(3), entry.ID)
	assert.Equal(t, testTime, entry.Timestamp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepositoryListByAssetNewestFirst(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	columns := []string{"id", "asset_id", "user_id", "action", "details", "timestamp"}
	rows := pgxmock.NewRows(columns).
		AddRow(int64(2), int64(7), nil, domain.AuditActionStatusChanged, "in_service -> out_repair", testTime.Add(time.Minute)).
		AddRow(int64(1), int64(7), nil, domain.AuditActionCreated, "asset created (type=physical)", testTime)
	mock.ExpectQuery("(?s)SELECT (.+) FROM audit_logs WHERE asset_id").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	repo := repository.NewAuditLogRepository(mock)
	logs, err := repo.ListByAsset(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.AuditActionStatusChanged, logs[0].Action)
	assert.Equal(t, domain.AuditActionCreated, logs[1].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}
