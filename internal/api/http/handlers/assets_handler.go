package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-inventory/internal/api/dto"
	"github.com/spec-kit/asset-inventory/internal/domain"
	"github.com/spec-kit/asset-inventory/internal/identity"
	"github.com/spec-kit/asset-inventory/internal/service"
	apperrors "github.com/spec-kit/asset-inventory/pkg/util"
)

const dateLayout = "2006-01-02"

// AssetsHandler manages the asset endpoints.
type AssetsHandler struct {
	assets *service.AssetService
	auth   *service.AuthService
	tokens *identity.TokenManager
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assets *service.AssetService, auth *service.AuthService, tokens *identity.TokenManager) *AssetsHandler {
	return &AssetsHandler{assets: assets, auth: auth, tokens: tokens}
}

// List GET /api/assets/.
func (h *AssetsHandler) List(c *fiber.Ctx) error {
	filter, err := parseAssetQuery(c)
	if err != nil {
		return err
	}
	assets, err := h.assets.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	names := h.assigneeNames(c)
	items := make([]dto.AssetResponse, 0, len(assets))
	for i := range assets {
		items = append(items, assetResponse(&assets[i], names))
	}
	return c.JSON(fiber.Map{"assets": items})
}

// Create POST /api/assets/.
func (h *AssetsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.AssetCreateInput{
		Type:         req.Type,
		AssignedTo:   req.AssigneeID,
		Manufacturer: req.Manufacturer,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		AssetTag:     req.AssetTag,
		Location:     req.Location,
		ProductName:  req.ProductName,
		LicenseKey:   req.LicenseKey,
		Version:      req.Version,
	}
	if req.Status != "" {
		status, ok := domain.ParseAssetStatus(req.Status)
		if !ok {
			return apperrors.NewValidationError("invalid status", map[string]any{"status": req.Status})
		}
		input.Status = status
	}
	if req.RenewalDate != "" {
		renewal, err := time.Parse(dateLayout, req.RenewalDate)
		if err != nil {
			return apperrors.NewValidationError("invalid renewalDate, expected YYYY-MM-DD", nil)
		}
		input.RenewalDate = &renewal
	}

	asset, err := h.assets.Create(c.UserContext(), h.actorID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "asset_id": asset.ID})
}

// Get GET /api/assets/:id/.
func (h *AssetsHandler) Get(c *fiber.Ctx) error {
	id, err := assetID(c)
	if err != nil {
		return err
	}
	asset, err := h.assets.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "asset": assetResponse(asset, h.assigneeNames(c))})
}

// Update PUT /api/assets/:id/.
func (h *AssetsHandler) Update(c *fiber.Ctx) error {
	id, err := assetID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.AssetUpdateInput{
		Status:      req.Status,
		RepairNotes: req.RepairNotes,
		AssigneeID:  req.AssigneeID,
		Unassign:    req.Unassign,
	}
	if _, err := h.assets.Update(c.UserContext(), h.actorID(c), id, input); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete DELETE /api/assets/:id/.
func (h *AssetsHandler) Delete(c *fiber.Ctx) error {
	id, err := assetID(c)
	if err != nil {
		return err
	}
	if err := h.assets.Delete(c.UserContext(), h.actorID(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// ListAuditLogs GET /api/assets/:id/logs.
func (h *AssetsHandler) ListAuditLogs(c *fiber.Ctx) error {
	id, err := assetID(c)
	if err != nil {
		return err
	}
	logs, err := h.assets.ListAuditLogs(c.UserContext(), id)
	if err != nil {
		return err
	}
	items := make([]dto.AuditLogResponse, 0, len(logs))
	for _, entry := range logs {
		items = append(items, dto.AuditLogResponse{
			ID:        entry.ID,
			AssetID:   entry.AssetID,
			UserID:    entry.UserID,
			Action:    string(entry.Action),
			Details:   entry.Details,
			Timestamp: entry.Timestamp.Format(time.RFC3339),
		})
	}
	return c.JSON(fiber.Map{"success": true, "logs": items})
}

// actorID resolves the acting user from an optional bearer token. The API
// does not require authentication; the id only feeds the audit trail.
func (h *AssetsHandler) actorID(c *fiber.Ctx) *int64 {
	token := bearerToken(c.Get("Authorization"))
	if token == "" {
		return nil
	}
	claims, err := h.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	return &claims.UserID
}

// assigneeNames maps user ids to display usernames for the response.
func (h *AssetsHandler) assigneeNames(c *fiber.Ctx) map[int64]string {
	names := map[int64]string{}
	accounts, err := h.auth.ListAccounts(c.UserContext())
	if err != nil {
		return names
	}
	for _, account := range accounts {
		names[account.ID] = account.Username
	}
	return names
}

func assetID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("Asset", nil)
	}
	return id, nil
}

func parseAssetQuery(c *fiber.Ctx) (service.AssetFilter, error) {
	var filter service.AssetFilter
	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := domain.ParseAssetStatus(statusStr)
		if !ok {
			return filter, apperrors.NewValidationError("invalid status filter", map[string]any{"status": statusStr})
		}
		filter.Status = &status
	}
	if typeStr := c.Query("type"); typeStr != "" {
		assetType := domain.AssetType(typeStr)
		if assetType != domain.AssetTypePhysical && assetType != domain.AssetTypeDigital {
			return filter, apperrors.NewValidationError("invalid type filter", map[string]any{"type": typeStr})
		}
		filter.Type = &assetType
	}
	if assignedStr := c.Query("assignedTo"); assignedStr != "" {
		assigned, err := strconv.ParseInt(assignedStr, 10, 64)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid assignedTo filter", nil)
		}
		filter.AssignedTo = &assigned
	}
	if manufacturer := c.Query("manufacturer"); manufacturer != "" {
		filter.Manufacturer = &manufacturer
	}
	return filter, nil
}

func assetResponse(asset *domain.Asset, names map[int64]string) dto.AssetResponse {
	resp := dto.AssetResponse{
		ID:            asset.ID,
		Type:          asset.Type,
		Status:        asset.Status.Label(),
		AssigneeID:    asset.AssignedTo,
		AssigneeName:  "Unassigned",
		DateInService: asset.DateInService.Format(dateLayout),
		RepairNotes:   asset.RepairNotes,
	}
	if asset.AssignedTo != nil {
		if name, ok := names[*asset.AssignedTo]; ok {
			resp.AssigneeName = name
		} else {
			resp.AssigneeName = "Unknown"
		}
	}

	if physical := asset.Physical; physical != nil {
		serial := ""
		if physical.SerialNumber != nil {
			serial = *physical.SerialNumber
		}
		resp.Manufacturer = &physical.Manufacturer
		resp.Model = &physical.Model
		resp.SerialNumber = &serial
		resp.AssetTag = &physical.AssetTag
		resp.Location = &physical.Location
	}
	if digital := asset.Digital; digital != nil {
		renewal := ""
		if digital.RenewalDate != nil {
			renewal = digital.RenewalDate.Format(dateLayout)
		}
		resp.ProductName = &digital.ProductName
		resp.LicenseKey = &digital.LicenseKey
		resp.Version = &digital.Version
		resp.RenewalDate = &renewal
	}
	return resp
}
