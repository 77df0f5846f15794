package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ecotrace/ecotrace-core/internal/domain"
	"github.com/ecotrace/ecotrace-core/internal/store/schema"
)

// Store defines the interface for database operations. Every method that spans
// more than one row runs as a single transaction; partial application is never
// observable.
type Store interface {
	// CreateProfile creates a user profile
	CreateProfile(ctx context.Context, input CreateProfileInput) (*schema.Profile, error)
	// GetProfileByUserID retrieves the profile for an authenticated user
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*schema.Profile, error)

	// CreateItem creates an item in pending status and appends its created event
	CreateItem(ctx context.Context, input CreateItemInput) (*schema.Item, error)
	// GetItemByID retrieves an item by its primary key
	GetItemByID(ctx context.Context, itemID uuid.UUID) (*schema.Item, error)
	// ListItemsByUser retrieves a user's items, newest first
	ListItemsByUser(ctx context.Context, userID uuid.UUID) ([]schema.Item, error)

	// ListTrackingEvents returns an item's full history in chronological order
	ListTrackingEvents(ctx context.Context, itemID uuid.UUID) ([]schema.TrackingEvent, error)
	// RecordEvent validates a lifecycle transition against the item's current
	// status, appends the tracking event, and updates the status cache, all in
	// one transaction with the item row locked
	RecordEvent(ctx context.Context, input RecordEventInput) (*schema.TrackingEvent, error)

	// CreateQRToken issues a scoped access token for an item
	CreateQRToken(ctx context.Context, input CreateQRTokenInput) (*schema.QRToken, error)
	// RedeemQRToken resolves a token to its item and, when an event is supplied,
	// records the transition and consumes single-use tokens atomically
	RedeemQRToken(ctx context.Context, input RedeemQRTokenInput) (*RedeemResult, error)

	// AssignItem binds an approved item to a driver or organization and
	// transitions it to assigned
	AssignItem(ctx context.Context, input AssignItemInput) (*schema.Assignment, error)
	// RespondToAssignment records the assignee's accept or reject decision
	RespondToAssignment(ctx context.Context, input RespondToAssignmentInput) (*schema.Assignment, error)
	// GetOpenAssignment returns the item's non-terminal assignment, if any
	GetOpenAssignment(ctx context.Context, itemID uuid.UUID) (*schema.Assignment, error)

	// AwardCredits writes an earned credit entry; a second earned entry for the
	// same item fails with domain.ErrDuplicateAward
	AwardCredits(ctx context.Context, input AwardCreditsInput) (*schema.CarbonCredit, error)
	// RedeemCredits writes a redeemed entry, rejecting redemptions that would
	// push the balance below zero
	RedeemCredits(ctx context.Context, input RedeemCreditsInput) (*schema.CarbonCredit, error)
	// CreditBalance recomputes the balance from the full entry history
	CreditBalance(ctx context.Context, userID uuid.UUID) (float64, error)
	// ListCreditEntries returns a user's credit history, newest first
	ListCreditEntries(ctx context.Context, userID uuid.UUID) ([]schema.CarbonCredit, error)

	// ApproveItem approves a pending item, awards credits, and writes the audit
	// log as one atomic unit; a failed award rolls the approval back
	ApproveItem(ctx context.Context, input ApproveItemInput) (*ApproveResult, error)
	// RejectItem rejects a pending item and writes the audit log
	RejectItem(ctx context.Context, input RejectItemInput) (*schema.Item, error)
	// UpdateUserRole changes a user's role and writes the audit log
	UpdateUserRole(ctx context.Context, input UpdateUserRoleInput) (*schema.Profile, error)
	// CreateCampaign creates a campaign and writes the audit log
	CreateCampaign(ctx context.Context, input CreateCampaignInput) (*schema.Campaign, error)

	// CreateNotification persists a user notification
	CreateNotification(ctx context.Context, input CreateNotificationInput) (*schema.Notification, error)
}

// CreateProfileInput holds the fields for creating a profile
type CreateProfileInput struct {
	UserID      uuid.UUID
	DisplayName *string
	Email       *string
	Role        domain.Role
}

// CreateItemInput holds the owner-declared fields of a new submission
type CreateItemInput struct {
	UserID         uuid.UUID
	ItemName       string
	Category       string
	Brand          *string
	Model          *string
	SerialNumber   *string
	Condition      *string
	EstimatedValue *float64
	PickupLocation *string
	Description    *string
	WeightKg       *float64
}

// RecordEventInput holds the fields of a lifecycle event to record
type RecordEventInput struct {
	ItemID      uuid.UUID
	EventType   domain.EventType
	ActorUserID *uuid.UUID
	ActorOrgID  *uuid.UUID
	Latitude    *float64
	Longitude   *float64
	Notes       *string
	Meta        datatypes.JSON
}

// CreateQRTokenInput holds the fields for issuing a token. ExpiresAt nil means
// the token never expires; callers apply the default expiry before reaching
// the store.
type CreateQRTokenInput struct {
	ItemID    uuid.UUID
	Purpose   domain.TokenPurpose
	ExpiresAt *time.Time
	CreatedBy uuid.UUID
}

// RedeemQRTokenInput holds a presented token and the optional event to record.
// Event nil is the read-only view path.
type RedeemQRTokenInput struct {
	Token       string
	Event       *domain.EventType
	ActorUserID *uuid.UUID
	Latitude    *float64
	Longitude   *float64
	Notes       *string
}

// RedeemResult bundles the outcome of a token redemption
type RedeemResult struct {
	Item  *schema.Item
	Token *schema.QRToken
	// Event is nil for view redemptions
	Event *schema.TrackingEvent
}

// AssignItemInput holds the fields for assigning an item. Exactly one of
// AssignedToUserID and AssignedToOrgID must be set.
type AssignItemInput struct {
	ItemID           uuid.UUID
	AssignedToUserID *uuid.UUID
	AssignedToOrgID  *uuid.UUID
	AssignedBy       uuid.UUID
}

// RespondToAssignmentInput records the assignee's decision on a pending assignment
type RespondToAssignmentInput struct {
	AssignmentID uuid.UUID
	ActorUserID  uuid.UUID
	Accept       bool
}

// AwardCreditsInput holds the fields of an earned credit entry
type AwardCreditsInput struct {
	UserID      uuid.UUID
	ItemID      uuid.UUID
	Credits     float64
	Description string
}

// RedeemCreditsInput holds the fields of a redeemed credit entry
type RedeemCreditsInput struct {
	UserID      uuid.UUID
	Credits     float64
	Description string
}

// ApproveItemInput holds the fields of an item approval
type ApproveItemInput struct {
	AdminID  uuid.UUID
	ItemID   uuid.UUID
	Credits  float64
	ItemName string
}

// ApproveResult bundles the outcome of an approval
type ApproveResult struct {
	Item   *schema.Item
	Credit *schema.CarbonCredit
}

// RejectItemInput holds the fields of an item rejection
type RejectItemInput struct {
	AdminID uuid.UUID
	ItemID  uuid.UUID
	Reason  *string
}

// UpdateUserRoleInput holds the fields of a role change
type UpdateUserRoleInput struct {
	AdminID      uuid.UUID
	TargetUserID uuid.UUID
	NewRole      domain.Role
}

// CreateCampaignInput holds the fields of a new campaign
type CreateCampaignInput struct {
	AdminID      uuid.UUID
	Title        string
	Description  string
	TargetAmount *float64
	StartDate    time.Time
	EndDate      time.Time
	ImageURL     *string
}

// CreateNotificationInput holds the fields of a user notification
type CreateNotificationInput struct {
	UserID    uuid.UUID
	Title     string
	Message   string
	Type      domain.NotificationType
	ActionURL *string
}
