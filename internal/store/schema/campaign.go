package schema

import (
	"time"

	"github.com/google/uuid"
)

// Campaign represents the campaigns table - a fundraising or awareness campaign
// created through the admin gateway.
type Campaign struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"column:title;not null;type:text"`
	Description string    `gorm:"column:description;not null;type:text"`
	// TargetAmount is the campaign goal; CurrentAmount accumulates contributions
	TargetAmount  *float64   `gorm:"column:target_amount;type:numeric"`
	CurrentAmount float64    `gorm:"column:current_amount;not null;default:0;type:numeric"`
	StartDate     time.Time  `gorm:"column:start_date;not null;type:timestamptz"`
	EndDate       time.Time  `gorm:"column:end_date;not null;type:timestamptz"`
	Status        string     `gorm:"column:status;not null;default:draft;type:text"`
	ImageURL      *string    `gorm:"column:image_url;type:text"`
	CreatedBy     *uuid.UUID `gorm:"column:created_by;type:uuid"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}
