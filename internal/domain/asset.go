package domain

import "time"

// AssetType discriminates the two asset variants.
type AssetType string

const (
	AssetTypePhysical AssetType = "physical"
	AssetTypeDigital  AssetType = "digital"
)

// AssetStatus enumerates lifecycle states for assets.
type AssetStatus string

const (
	AssetStatusInService      AssetStatus = "in_service"
	AssetStatusOutRepair      AssetStatus = "out_repair"
	AssetStatusDecommissioned AssetStatus = "decommissioned"
)

var statusLabels = map[AssetStatus]string{
	AssetStatusInService:      "In Service",
	AssetStatusOutRepair:      "Out for Repair",
	AssetStatusDecommissioned: "Decommissioned",
}

// Label returns the human-readable form used on the wire.
func (s AssetStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Valid reports whether the status is one of the known states.
func (s AssetStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseAssetStatus accepts either the internal key or the wire label.
func ParseAssetStatus(value string) (AssetStatus, bool) {
	status := AssetStatus(value)
	if status.Valid() {
		return status, true
	}
	for key, label := range statusLabels {
		if label == value {
			return key, true
		}
	}
	return "", false
}

// PhysicalDetails holds fields that only exist on physical assets.
type PhysicalDetails struct {
	Manufacturer string
	Model        string
	SerialNumber *string
	AssetTag     string
	Location     string
}

// DigitalDetails holds fields that only exist on digital assets.
type DigitalDetails struct {
	ProductName string
	LicenseKey  string
	Version     string
	RenewalDate *time.Time
}

// Asset is the central inventory entity. Exactly one of Physical or
// Digital is non-nil, matching Type.
type Asset struct {
	ID            int64
	Type          AssetType
	Status        AssetStatus
	AssignedTo    *int64
	DateInService time.Time
	RepairNotes   string
	Physical      *PhysicalDetails
	Digital       *DigitalDetails
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SerialNumber returns the serial number for physical assets, nil otherwise.
func (a *Asset) SerialNumber() *string {
	if a.Physical == nil {
		return nil
	}
	return a.Physical.SerialNumber
}
