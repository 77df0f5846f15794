package rest

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ecotrace/ecotrace-core/internal/domain"
)

// submitItemRequest is the body of POST /items
type submitItemRequest struct {
	ItemName       string   `json:"item_name" binding:"required"`
	Category       string   `json:"category" binding:"required"`
	Brand          *string  `json:"brand"`
	Model          *string  `json:"model"`
	SerialNumber   *string  `json:"serial_number"`
	Condition      *string  `json:"condition"`
	EstimatedValue *float64 `json:"estimated_value"`
	PickupLocation *string  `json:"pickup_location"`
	Description    *string  `json:"description"`
	WeightKg       *float64 `json:"weight_kg"`
}

// issueTokenRequest is the body of POST /items/:id/tokens.
// TTLMinutes overrides the configured default expiry; zero keeps it.
// NeverExpires wins over TTLMinutes and issues a token with no expiry.
type issueTokenRequest struct {
	Purpose      domain.TokenPurpose `json:"purpose" binding:"required"`
	TTLMinutes   int                 `json:"ttl_minutes"`
	NeverExpires bool                `json:"never_expires"`
}

// scanTokenRequest is the body of POST /qr/scan.
// Event empty is a read-only view scan.
type scanTokenRequest struct {
	Token     string           `json:"token" binding:"required"`
	Event     domain.EventType `json:"event"`
	Latitude  *float64         `json:"latitude"`
	Longitude *float64         `json:"longitude"`
	Notes     *string          `json:"notes"`
}

// recordEventRequest is the body of POST /items/:id/events
type recordEventRequest struct {
	EventType domain.EventType `json:"event_type" binding:"required"`
	Latitude  *float64         `json:"latitude"`
	Longitude *float64         `json:"longitude"`
	Notes     *string          `json:"notes"`
	Meta      datatypes.JSON   `json:"meta"`
}

// assignItemRequest is the body of POST /items/:id/assignments.
// Exactly one of assigned_to_user_id and assigned_to_org_id must be set.
type assignItemRequest struct {
	AssignedToUserID *uuid.UUID `json:"assigned_to_user_id"`
	AssignedToOrgID  *uuid.UUID `json:"assigned_to_org_id"`
}

// respondAssignmentRequest is the body of POST /assignments/:id/respond
type respondAssignmentRequest struct {
	Accept bool `json:"accept"`
}

// redeemCreditsRequest is the body of POST /credits/redeem
type redeemCreditsRequest struct {
	Credits     float64 `json:"credits" binding:"required,gt=0"`
	Description string  `json:"description"`
}

// approveItemRequest is the body of POST /admin/items/:id/approve
type approveItemRequest struct {
	Credits float64 `json:"credits" binding:"required,gt=0"`
}

// rejectItemRequest is the body of POST /admin/items/:id/reject
type rejectItemRequest struct {
	Reason *string `json:"reason"`
}

// updateRoleRequest is the body of POST /admin/users/:id/role
type updateRoleRequest struct {
	Role domain.Role `json:"role" binding:"required"`
}

// createCampaignRequest is the body of POST /admin/campaigns
type createCampaignRequest struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description"`
	TargetAmount *float64  `json:"target_amount"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
	ImageURL     *string   `json:"image_url"`
}

// balanceResponse is the body returned by GET /credits/balance
type balanceResponse struct {
	Balance float64 `json:"balance"`
}
