package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecotrace/ecotrace-core/internal/domain"
)

// Assignment represents the ewaste_assignments table - the binding of one item to
// one responsible actor (a driver user or an organization, mutually exclusive).
// At most one non-terminal assignment may exist per item; the store enforces this
// with a partial unique index on top of the in-transaction check.
type Assignment struct {
	// ID is the assignment's primary key
	ID uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	// ItemID references the assigned item
	ItemID uuid.UUID `gorm:"column:item_id;type:uuid;not null;index"`
	// AssignedToUserID is the assignee when a driver user is responsible
	AssignedToUserID *uuid.UUID `gorm:"column:assigned_to_user_id;type:uuid"`
	// AssignedToOrgID is the assignee when an organization is responsible
	AssignedToOrgID *uuid.UUID `gorm:"column:assigned_to_org_id;type:uuid"`
	// AssignedBy is the actor that created the assignment
	AssignedBy *uuid.UUID `gorm:"column:assigned_by;type:uuid"`
	// Status tracks the assignee's acceptance and the assignment's completion
	Status      domain.AssignmentStatus `gorm:"column:status;not null;default:pending;type:text"`
	AssignedAt  time.Time               `gorm:"column:assigned_at;not null;default:now();type:timestamptz"`
	AcceptedAt  *time.Time              `gorm:"column:accepted_at;type:timestamptz"`
	CompletedAt *time.Time              `gorm:"column:completed_at;type:timestamptz"`
}

// TableName specifies the table name for the Assignment model
func (Assignment) TableName() string {
	return "ewaste_assignments"
}
