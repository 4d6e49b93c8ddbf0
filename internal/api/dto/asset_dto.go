package dto

import "github.com/spec-kit/asset-inventory/internal/domain"

// CreateAssetRequest payload. Status accepts the wire label or the internal
// key; dates use YYYY-MM-DD.
type CreateAssetRequest struct {
	Type       domain.AssetType `json:"type"`
	Status     string           `json:"status"`
	AssigneeID *int64           `json:"assigneeId"`

	Manufacturer string  `json:"manufacturer"`
	Model        string  `json:"model"`
	SerialNumber *string `json:"serialNumber"`
	AssetTag     string  `json:"assetTag"`
	Location     string  `json:"location"`

	ProductName string `json:"productName"`
	LicenseKey  string `json:"licenseKey"`
	Version     string `json:"version"`
	RenewalDate string `json:"renewalDate"`
}

// UpdateAssetRequest payload for partial updates.
type UpdateAssetRequest struct {
	Status      *string `json:"status"`
	RepairNotes *string `json:"repairNotes"`
	AssigneeID  *int64  `json:"assigneeId"`
	Unassign    bool    `json:"unassign"`
}

// AssetResponse renders an asset with its human-readable status and only the
// field subset matching its type. Shape matches the original client.
type AssetResponse struct {
	ID            int64            `json:"id"`
	Type          domain.AssetType `json:"type"`
	Status        string           `json:"status"`
	AssigneeID    *int64           `json:"assigneeId"`
	AssigneeName  string           `json:"assigneeName"`
	DateInService string           `json:"dateInService"`
	RepairNotes   string           `json:"repairNotes"`

	Manufacturer *string `json:"manufacturer,omitempty"`
	Model        *string `json:"model,omitempty"`
	SerialNumber *string `json:"serialNumber,omitempty"`
	AssetTag     *string `json:"assetTag,omitempty"`
	Location     *string `json:"location,omitempty"`

	ProductName *string `json:"productName,omitempty"`
	LicenseKey  *string `json:"licenseKey,omitempty"`
	Version     *string `json:"version,omitempty"`
	RenewalDate *string `json:"renewalDate,omitempty"`
}

// AuditLogResponse renders one trail entry.
type AuditLogResponse struct {
	ID        int64  `json:"id"`
	AssetID   int64  `json:"assetId"`
	UserID    *int64 `json:"userId"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
}
