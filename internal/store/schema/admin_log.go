package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdminLog represents the admin_logs table - an immutable audit record of one
// privileged action, written in the same transaction as the action itself.
type AdminLog struct {
	// ID is the log entry's primary key
	ID uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	// AdminID is the admin that performed the action
	AdminID uuid.UUID `gorm:"column:admin_id;type:uuid;not null;index"`
	// Action is the admin action name (approve_ewaste, reject_ewaste, ...)
	Action string `gorm:"column:action;not null;type:text"`
	// TargetTable is the table the action mutated
	TargetTable *string `gorm:"column:target_table;type:text"`
	// TargetID is the primary key of the mutated row
	TargetID *string `gorm:"column:target_id;type:text"`
	// OldValues is a snapshot of relevant fields before the mutation
	OldValues datatypes.JSON `gorm:"column:old_values;type:jsonb"`
	// NewValues is a snapshot of relevant fields after the mutation
	NewValues datatypes.JSON `gorm:"column:new_values;type:jsonb"`
	IPAddress *string        `gorm:"column:ip_address;type:text"`
	UserAgent *string        `gorm:"column:user_agent;type:text"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the AdminLog model
func (AdminLog) TableName() string {
	return "admin_logs"
}
