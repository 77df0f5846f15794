// Package executor holds the business façade shared by API transports.
// Handlers parse and validate the wire format; the executor owns
// authorization and orchestrates store transactions and notifications.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apierrors "github.com/ecotrace/ecotrace-core/internal/api/shared/errors"
	"github.com/ecotrace/ecotrace-core/internal/domain"
	"github.com/ecotrace/ecotrace-core/internal/notifier"
	"github.com/ecotrace/ecotrace-core/internal/store"
	"github.com/ecotrace/ecotrace-core/internal/store/schema"
)

// Executor is the interface for the API executor
type Executor interface {
	// SubmitItem registers a new e-waste item owned by the caller
	SubmitItem(ctx context.Context, callerID uuid.UUID, input store.CreateItemInput) (*schema.Item, error)

	// GetItem retrieves an item; owner, assignee, and staff only
	GetItem(ctx context.Context, callerID uuid.UUID, itemID uuid.UUID) (*schema.Item, error)

	// ListMyItems retrieves the caller's items
	ListMyItems(ctx context.Context, callerID uuid.UUID) ([]schema.Item, error)

	// GetItemHistory retrieves an item's tracking events in chronological order
	GetItemHistory(ctx context.Context, callerID uuid.UUID, itemID uuid.UUID) ([]schema.TrackingEvent, error)

	// IssueToken creates a QR token for an item; owner and staff only
	IssueToken(ctx context.Context, callerID uuid.UUID, itemID uuid.UUID, purpose domain.TokenPurpose, ttl *time.Duration) (*schema.QRToken, error)

	// ScanToken redeems a QR token, optionally recording a lifecycle event
	ScanToken(ctx context.Context, callerID *uuid.UUID, input store.RedeemQRTokenInput) (*store.RedeemResult, error)

	// RecordEvent appends a lifecycle event directly, without a token
	RecordEvent(ctx context.Context, callerID uuid.UUID, input store.RecordEventInput) (*schema.TrackingEvent, error)

	// AssignItem assigns an approved item to a driver or organization
	AssignItem(ctx context.Context, callerID uuid.UUID, input store.AssignItemInput) (*schema.Assignment, error)

	// RespondToAssignment accepts or rejects the caller's assignment
	RespondToAssignment(ctx context.Context, callerID uuid.UUID, assignmentID uuid.UUID, accept bool) (*schema.Assignment, error)

	// CreditBalance returns the caller's current credit balance
	CreditBalance(ctx context.Context, callerID uuid.UUID) (float64, error)

	// CreditHistory returns the caller's credit entries, newest first
	CreditHistory(ctx context.Context, callerID uuid.UUID) ([]schema.CarbonCredit, error)

	// RedeemCredits spends part of the caller's credit balance
	RedeemCredits(ctx context.Context, callerID uuid.UUID, credits float64, description string) (*schema.CarbonCredit, error)

	// ApproveItem approves a pending item and awards credits; admin only
	ApproveItem(ctx context.Context, callerID uuid.UUID, itemID uuid.UUID, credits float64) (*store.ApproveResult, error)

	// RejectItem rejects a pending item; admin only
	RejectItem(ctx context.Context, callerID uuid.UUID, itemID uuid.UUID, reason *string) (*schema.Item, error)

	// UpdateUserRole changes a user's role; admin only
	UpdateUserRole(ctx context.Context, callerID uuid.UUID, targetUserID uuid.UUID, role domain.Role) (*schema.Profile, error)

	// CreateCampaign creates a campaign; admin only
	CreateCampaign(ctx context.Context, callerID uuid.UUID, input store.CreateCampaignInput) (*schema.Campaign, error)
}

type executor struct {
	store           store.Store
	notifier        notifier.Notifier
	tokenDefaultTTL time.Duration
}

// NewExecutor creates the executor backed by the store and notifier
func NewExecutor(st store.Store, nt notifier.Notifier, tokenDefaultTTL time.Duration) Executor {
	if tokenDefaultTTL == 0 {
		tokenDefaultTTL = time.Hour
	}
	return &executor{store: st, notifier: nt, tokenDefaultTTL: tokenDefaultTTL}
}

// caller resolves the calling user's profile. The role is re-read on every
// call; a revoked role takes effect immediately.
func (e *executor) caller(ctx context.Context, callerID uuid.UUID) (*schema.Profile, error) {
	profile, err := e.store.GetProfileByUserID(ctx, callerID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get caller profile: %v", err))
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: caller %s has no profile", domain.ErrPermissionDenied, callerID)
	}
	if !profile.IsActive {
		return nil, fmt.Errorf("%w: caller %s is deactivated", domain.ErrPermissionDenied, callerID)
	}
	return profile, nil
}

func isStaff(role domain.Role) bool {
	return role == domain.RoleAdmin || role == domain.RoleModerator
}

// eventAllowedForRole maps lifecycle events to the roles permitted to record
// them. Admins may record anything; owners never advance their own items past
// submission.
func eventAllowedForRole(event domain.EventType, role domain.Role) bool {
	if role == domain.RoleAdmin {
		return true
	}
	switch event {
	case domain.EventTypePickupStarted, domain.EventTypeCollected, domain.EventTypeInTransit:
		return role == domain.RoleDriver || role == domain.RoleNGO
	case domain.EventTypeArrivedFacility, domain.EventTypeProcessed, domain.EventTypeHandoff:
		return role == domain.RoleRecycler
	case domain.EventTypeCancelled:
		return isStaff(role)
	default:
		return false
	}
}

func (e *executor) SubmitItem(ctx context.Context, callerID uuid.UUID, input store.CreateItemInput) (*schema.Item, error) {
	if _, err := e.caller(ctx, callerID); err != nil {
		return nil, err
	}
	if input.ItemName == "" || input.Category == "" {
		return nil, fmt.Errorf("%w: item_name and category are required", domain.ErrInvalidArgument)
	}

	input.UserID = callerID
	item, err := e.store.CreateItem(ctx, input)
	if err != nil {
		return nil, err
	}

	e.notifier.Notify(ctx, notifier.Notification{
		UserID:  callerID,
		Title:   "Item submitted",
		Message: fmt.Sprintf("Your item %q was submitted and is pending review.", item.ItemName),
		Type:    domain.NotificationTypeInfo,
	})
	return item, nil
}

// canViewItem gates read access: the owner, staff, and the assigned driver
func (e *executor) canViewItem(ctx context.Context, profile *schema.Profile, item *schema.Item) (bool, error) {
	if item.UserID == profile.UserID || isStaff(profile.Role) {
		return true, nil
	}

	assignment, err := e.store.GetOpenAssignment(ctx, item.ID)
	if err != nil {
		return false, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get assignment: %v", err))
	}
	if assignment != nil && assignment.AssignedToUserID != nil && *assignment.AssignedToUserID == profile.UserID {
		return true, nil
	}
	return false, nil
}

func (e *executor) GetItem(ctx context.Context, callerID uuid.UUID, itemID uuid.UUID) (*schema.Item, error) {
	profile, err := e.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	item, err := e.store.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get item: %v", err))
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, itemID)
	}

	ok, err := e.canViewItem(ctx, profile, item)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: item %s", domain.ErrPermissionDenied, itemID)
	}
	return item, nil
}

func (e *executor) ListMyItems(ctx context.Context, callerID uuid.UUID) ([]schema.Item, error) {
	if _, err := e.caller(ctx, callerID); err != nil {
		return nil, err
	}
	items, err := e.store.ListItemsByUser(ctx, callerID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list items: %v", err))
	}
	return items, nil
}

func (e *executor) GetItemHistory(ctx context.Context, callerID uuid.UUID, itemID uuid.UUID) ([]schema.TrackingEvent, error) {
	// GetItem performs the access check
	if _, err := e.GetItem(ctx, callerID, itemID); err != nil {
		return nil, err
	}

	events, err := e.store.ListTrackingEvents(ctx, itemID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list events: %v", err))
	}
	return events, nil
}

func (e *executor) IssueToken(ctx context.Context, callerID uuid.UUID, itemID uuid.UUID, purpose domain.TokenPurpose, ttl *time.Duration) (*schema.QRToken, error) {
	profile, err := e.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !domain.IsValidTokenPurpose(purpose) {
		return nil, fmt.Errorf("%w: unknown token purpose %q", domain.ErrInvalidArgument, purpose)
	}

	item, err := e.store.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get item: %v", err))
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, itemID)
	}
	if item.UserID != callerID && !isStaff(profile.Role) {
		return nil, fmt.Errorf("%w: only the owner or staff may issue tokens", domain.ErrPermissionDenied)
	}

	effectiveTTL := e.tokenDefaultTTL
	if ttl != nil {
		effectiveTTL = *ttl
	}
	var expiresAt *time.Time
	if effectiveTTL > 0 {
		t := time.Now().Add(effectiveTTL)
		expiresAt = &t
	}

	return e.store.CreateQRToken(ctx, store.CreateQRTokenInput{
		ItemID:    itemID,
		Purpose:   purpose,
		ExpiresAt: expiresAt,
		CreatedBy: callerID,
	})
}

func (e *executor) ScanToken(ctx context.Context, callerID *uuid.UUID, input store.RedeemQRTokenInput) (*store.RedeemResult, error) {
	// View redemptions need no identity; event-recording scans do
	if input.Event != nil {
		if callerID == nil {
			return nil, fmt.Errorf("%w: recording an event requires authentication", domain.ErrPermissionDenied)
		}
		profile, err := e.caller(ctx, *callerID)
		if err != nil {
			return nil, err
		}
		if !domain.IsValidEventType(*input.Event) || !input.Event.IsScanEvent() {
			return nil, fmt.Errorf("%w: event %q cannot be recorded by scan", domain.ErrInvalidArgument, *input.Event)
		}
		if !eventAllowedForRole(*input.Event, profile.Role) {
			return nil, fmt.Errorf("%w: role %s may not record %s", domain.ErrPermissionDenied, profile.Role, *input.Event)
		}
		input.ActorUserID = callerID
	}

	result, err := e.store.RedeemQRToken(ctx, input)
	if err != nil {
		return nil, err
	}

	if result.Event != nil {
		e.notifier.Notify(ctx, notifier.Notification{
			UserID:  result.Item.UserID,
			Title:   "Item update",
			Message: fmt.Sprintf("Your item %q is now %s.", result.Item.ItemName, result.Item.Status),
			Type:    domain.NotificationTypeInfo,
		})
	}
	return result, nil
}

func (e *executor) RecordEvent(ctx context.Context, callerID uuid.UUID, input store.RecordEventInput) (*schema.TrackingEvent, error) {
	profile, err := e.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !domain.IsValidEventType(input.EventType) {
		return nil, fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidArgument, input.EventType)
	}
	// created/assigned/approved/rejected are owned by submission, assignment,
	// and the admin gateway; recording them here would skip credit award and
	// the audit log. Only physical-progress events and cancellation are direct.
	if !input.EventType.IsScanEvent() && input.EventType != domain.EventTypeCancelled {
		return nil, fmt.Errorf("%w: event %q cannot be recorded directly", domain.ErrInvalidArgument, input.EventType)
	}
	if !eventAllowedForRole(input.EventType, profile.Role) {
		return nil, fmt.Errorf("%w: role %s may not record %s", domain.ErrPermissionDenied, profile.Role, input.EventType)
	}

	input.ActorUserID = &callerID
	event, err := e.store.RecordEvent(ctx, input)
	if err != nil {
		return nil, err
	}

	item, getErr := e.store.GetItemByID(ctx, input.ItemID)
	if getErr == nil && item != nil {
		e.notifier.Notify(ctx, notifier.Notification{
			UserID:  item.UserID,
			Title:   "Item update",
			Message: fmt.Sprintf("Your item %q is now %s.", item.ItemName, item.Status),
			Type:    domain.NotificationTypeInfo,
		})
	}
	return event, nil
}

func (e *executor) AssignItem(ctx context.Context, callerID uuid.UUID, input store.AssignItemInput) (*schema.Assignment, error) {
	profile, err := e.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if profile.Role != domain.RoleAdmin && profile.Role != domain.RoleNGO {
		return nil, fmt.Errorf("%w: role %s may not assign items", domain.ErrPermissionDenied, profile.Role)
	}

	input.AssignedBy = callerID
	assignment, err := e.store.AssignItem(ctx, input)
	if err != nil {
		return nil, err
	}

	if assignment.AssignedToUserID != nil {
		e.notifier.Notify(ctx, notifier.Notification{
			UserID:  *assignment.AssignedToUserID,
			Title:   "New pickup assignment",
			Message: "You have been assigned an e-waste pickup.",
			Type:    domain.NotificationTypeInfo,
		})
	}
	return assignment, nil
}

func (e *executor) RespondToAssignment(ctx context.Context, callerID uuid.UUID, assignmentID uuid.UUID, accept bool) (*schema.Assignment, error) {
	if _, err := e.caller(ctx, callerID); err != nil {
		return nil, err
	}
	return e.store.RespondToAssignment(ctx, store.RespondToAssignmentInput{
		AssignmentID: assignmentID,
		ActorUserID:  callerID,
		Accept:       accept,
	})
}

func (e *executor) CreditBalance(ctx context.Context, callerID uuid.UUID) (float64, error) {
	if _, err := e.caller(ctx, callerID); err != nil {
		return 0, err
	}
	balance, err := e.store.CreditBalance(ctx, callerID)
	if err != nil {
		return 0, apierrors.NewDatabaseError(fmt.Sprintf("Failed to compute balance: %v", err))
	}
	return balance, nil
}

func (e *executor) CreditHistory(ctx context.Context, callerID uuid.UUID) ([]schema.CarbonCredit, error) {
	if _, err := e.caller(ctx, callerID); err != nil {
		return nil, err
	}
	entries, err := e.store.ListCreditEntries(ctx, callerID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list credit entries: %v", err))
	}
	return entries, nil
}

func (e *executor) RedeemCredits(ctx context.Context, callerID uuid.UUID, credits float64, description string) (*schema.CarbonCredit, error) {
	if _, err := e.caller(ctx, callerID); err != nil {
		return nil, err
	}
	entry, err := e.store.RedeemCredits(ctx, store.RedeemCreditsInput{
		UserID:      callerID,
		Credits:     credits,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	e.notifier.Notify(ctx, notifier.Notification{
		UserID:  callerID,
		Title:   "Credits redeemed",
		Message: fmt.Sprintf("You redeemed %.2f carbon credits.", credits),
		Type:    domain.NotificationTypeSuccess,
	})
	return entry, nil
}

// requireAdmin gates the admin surface. The store re-verifies the role
// inside its transaction; this check exists to fail fast with a clean error.
func (e *executor) requireAdmin(ctx context.Context, callerID uuid.UUID) error {
	profile, err := e.caller(ctx, callerID)
	if err != nil {
		return err
	}
	if profile.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: admin role required", domain.ErrPermissionDenied)
	}
	return nil
}

func (e *executor) ApproveItem(ctx context.Context, callerID uuid.UUID, itemID uuid.UUID, credits float64) (*store.ApproveResult, error) {
	if err := e.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	if credits <= 0 {
		return nil, fmt.Errorf("%w: credits must be positive", domain.ErrInvalidArgument)
	}

	item, err := e.store.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get item: %v", err))
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, itemID)
	}

	result, err := e.store.ApproveItem(ctx, store.ApproveItemInput{
		AdminID:  callerID,
		ItemID:   itemID,
		Credits:  credits,
		ItemName: item.ItemName,
	})
	if err != nil {
		return nil, err
	}

	e.notifier.Notify(ctx, notifier.Notification{
		UserID:  result.Item.UserID,
		Title:   "Item approved",
		Message: fmt.Sprintf("Your item %q was approved. You earned %.2f carbon credits.", result.Item.ItemName, credits),
		Type:    domain.NotificationTypeSuccess,
	})
	return result, nil
}

func (e *executor) RejectItem(ctx context.Context, callerID uuid.UUID, itemID uuid.UUID, reason *string) (*schema.Item, error) {
	if err := e.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	item, err := e.store.RejectItem(ctx, store.RejectItemInput{
		AdminID: callerID,
		ItemID:  itemID,
		Reason:  reason,
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your item %q was rejected.", item.ItemName)
	if reason != nil && *reason != "" {
		message = fmt.Sprintf("Your item %q was rejected: %s", item.ItemName, *reason)
	}
	e.notifier.Notify(ctx, notifier.Notification{
		UserID:  item.UserID,
		Title:   "Item rejected",
		Message: message,
		Type:    domain.NotificationTypeWarning,
	})
	return item, nil
}

func (e *executor) UpdateUserRole(ctx context.Context, callerID uuid.UUID, targetUserID uuid.UUID, role domain.Role) (*schema.Profile, error) {
	if err := e.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	profile, err := e.store.UpdateUserRole(ctx, store.UpdateUserRoleInput{
		AdminID:      callerID,
		TargetUserID: targetUserID,
		NewRole:      role,
	})
	if err != nil {
		return nil, err
	}

	e.notifier.Notify(ctx, notifier.Notification{
		UserID:  targetUserID,
		Title:   "Role updated",
		Message: fmt.Sprintf("Your account role is now %s.", role),
		Type:    domain.NotificationTypeSystem,
	})
	return profile, nil
}

func (e *executor) CreateCampaign(ctx context.Context, callerID uuid.UUID, input store.CreateCampaignInput) (*schema.Campaign, error) {
	if err := e.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidArgument)
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, fmt.Errorf("%w: end_date must be after start_date", domain.ErrInvalidArgument)
	}

	input.AdminID = callerID
	return e.store.CreateCampaign(ctx, input)
}
