package domain

// ItemStatus represents the lifecycle status of an e-waste item
type ItemStatus string

const (
	ItemStatusPending         ItemStatus = "pending"
	ItemStatusApproved        ItemStatus = "approved"
	ItemStatusAssigned        ItemStatus = "assigned"
	ItemStatusCollected       ItemStatus = "collected"
	ItemStatusInTransit       ItemStatus = "in_transit"
	ItemStatusArrivedFacility ItemStatus = "arrived_facility"
	ItemStatusProcessed       ItemStatus = "processed"
	ItemStatusCompleted       ItemStatus = "completed"
	ItemStatusRejected        ItemStatus = "rejected"
)

// IsTerminal reports whether the status admits no further transitions
func (s ItemStatus) IsTerminal() bool {
	return s == ItemStatusCompleted || s == ItemStatusRejected
}

// IsValidItemStatus checks if a status is part of the lifecycle enum
func IsValidItemStatus(s ItemStatus) bool {
	switch s {
	case ItemStatusPending, ItemStatusApproved, ItemStatusAssigned,
		ItemStatusCollected, ItemStatusInTransit, ItemStatusArrivedFacility,
		ItemStatusProcessed, ItemStatusCompleted, ItemStatusRejected:
		return true
	}
	return false
}

// EventType represents the type of tracking event driving a lifecycle transition
type EventType string

const (
	EventTypeCreated         EventType = "created"
	EventTypeApproved        EventType = "approved"
	EventTypeRejected        EventType = "rejected"
	EventTypeAssigned        EventType = "assigned"
	EventTypePickupStarted   EventType = "pickup_started"
	EventTypeCollected       EventType = "collected"
	EventTypeInTransit       EventType = "in_transit"
	EventTypeArrivedFacility EventType = "arrived_facility"
	EventTypeProcessed       EventType = "processed"
	EventTypeHandoff         EventType = "handoff"
	EventTypeCancelled       EventType = "cancelled"
)

// IsValidEventType checks if an event type is part of the tracking enum
func IsValidEventType(e EventType) bool {
	switch e {
	case EventTypeCreated, EventTypeApproved, EventTypeRejected,
		EventTypeAssigned, EventTypePickupStarted, EventTypeCollected,
		EventTypeInTransit, EventTypeArrivedFacility, EventTypeProcessed,
		EventTypeHandoff, EventTypeCancelled:
		return true
	}
	return false
}

// IsScanEvent reports whether the event may be recorded through a QR scan.
// created/approved/rejected are system- or admin-originated only.
func (e EventType) IsScanEvent() bool {
	switch e {
	case EventTypePickupStarted, EventTypeCollected, EventTypeInTransit,
		EventTypeArrivedFacility, EventTypeProcessed, EventTypeHandoff:
		return true
	}
	return false
}

// TokenPurpose represents the scoped action a QR token grants on an item
type TokenPurpose string

const (
	TokenPurposeView    TokenPurpose = "view"
	TokenPurposeHandoff TokenPurpose = "handoff"
	TokenPurposePickup  TokenPurpose = "pickup"
	TokenPurposeProcess TokenPurpose = "process"
)

// IsValidTokenPurpose checks if a purpose is part of the token enum
func IsValidTokenPurpose(p TokenPurpose) bool {
	switch p {
	case TokenPurposeView, TokenPurposeHandoff, TokenPurposePickup, TokenPurposeProcess:
		return true
	}
	return false
}

// SingleUse reports whether a successful mutating redemption must mark the token used.
// View and pickup tokens are re-redeemable capabilities; handoff and process tokens
// are consumed by exactly one scan.
func (p TokenPurpose) SingleUse() bool {
	return p == TokenPurposeHandoff || p == TokenPurposeProcess
}

// AssignmentStatus represents the state of an item assignment
type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusActive    AssignmentStatus = "active"
	AssignmentStatusAccepted  AssignmentStatus = "accepted"
	AssignmentStatusRejected  AssignmentStatus = "rejected"
	AssignmentStatusCancelled AssignmentStatus = "cancelled"
	AssignmentStatusCompleted AssignmentStatus = "completed"
)

// IsTerminal reports whether the assignment admits no further transitions
func (s AssignmentStatus) IsTerminal() bool {
	return s == AssignmentStatusRejected || s == AssignmentStatusCancelled || s == AssignmentStatusCompleted
}

// CreditTransactionType represents the direction of a carbon-credit ledger entry
type CreditTransactionType string

const (
	CreditTransactionEarned      CreditTransactionType = "earned"
	CreditTransactionRedeemed    CreditTransactionType = "redeemed"
	CreditTransactionTransferred CreditTransactionType = "transferred"
)

// Role represents a user's role, a closed set handled exhaustively at the admin boundary
type Role string

const (
	RoleIndividual Role = "individual"
	RoleNGO        Role = "ngo"
	RoleDriver     Role = "driver"
	RoleRecycler   Role = "recycler"
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
)

// IsValidRole checks if a role is part of the closed role set
func IsValidRole(r Role) bool {
	switch r {
	case RoleIndividual, RoleNGO, RoleDriver, RoleRecycler, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// AdminAction represents a privileged action performed through the admin gateway
type AdminAction string

const (
	AdminActionApproveEwaste  AdminAction = "approve_ewaste"
	AdminActionRejectEwaste   AdminAction = "reject_ewaste"
	AdminActionUpdateUserRole AdminAction = "update_user_role"
	AdminActionCreateCampaign AdminAction = "create_campaign"
)

// TargetTable returns the table an admin action mutates, recorded in the audit log
func (a AdminAction) TargetTable() string {
	switch a {
	case AdminActionApproveEwaste, AdminActionRejectEwaste:
		return "ewaste_items"
	case AdminActionUpdateUserRole:
		return "profiles"
	case AdminActionCreateCampaign:
		return "campaigns"
	default:
		return "unknown"
	}
}

// NotificationType represents the severity class of a user notification
type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
	NotificationTypeSystem  NotificationType = "system"
)
