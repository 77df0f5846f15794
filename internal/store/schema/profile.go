package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecotrace/ecotrace-core/internal/domain"
)

// Profile represents the profiles table - user identity and role. Role is the
// authorization source of truth and is re-read on every privileged call.
type Profile struct {
	// ID is the profile's primary key
	ID uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	// UserID is the authenticated account the profile belongs to
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	DisplayName *string   `gorm:"column:display_name;type:text"`
	Email       *string   `gorm:"column:email;type:text"`
	Phone       *string   `gorm:"column:phone;type:text"`
	AvatarURL   *string   `gorm:"column:avatar_url;type:text"`
	Bio         *string   `gorm:"column:bio;type:text"`
	Location    *string   `gorm:"column:location;type:text"`
	// Organization is a free-text affiliation label, distinct from org membership
	Organization *string `gorm:"column:organization;type:text"`
	// Role is the closed role set: individual, ngo, driver, recycler, admin, moderator
	Role               domain.Role `gorm:"column:role;not null;default:individual;type:text"`
	EmailNotifications bool        `gorm:"column:email_notifications;not null;default:true"`
	IsActive           bool        `gorm:"column:is_active;not null;default:true"`
	CreatedAt          time.Time   `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt          time.Time   `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}
