package schema

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents the organizations table - a collection or processing
// entity that items can be assigned to.
type Organization struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string     `gorm:"column:name;not null;type:text"`
	OrgType   string     `gorm:"column:org_type;not null;type:text"`
	CreatedBy *uuid.UUID `gorm:"column:created_by;type:uuid"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Organization model
func (Organization) TableName() string {
	return "organizations"
}
