package domain

import "time"

// AuditAction labels what a log entry records. Free text in storage; these
// are the values the services emit.
type AuditAction string

const (
	AuditActionCreated             AuditAction = "created"
	AuditActionStatusChanged       AuditAction = "status_changed"
	AuditActionAssigned            AuditAction = "assigned"
	AuditActionUpdated             AuditAction = "updated"
	AuditActionTicketCreated       AuditAction = "ticket_created"
	AuditActionTicketStatusChanged AuditAction = "ticket_status_changed"
)

// AuditLog is an immutable trail entry for an asset. Rows cascade when the
// asset is deleted; the user reference is nulled when the user is removed.
type AuditLog struct {
	ID        int64
	AssetID   int64
	UserID    *int64
	Action    AuditAction
	Details   string
	Timestamp time.Time
}
