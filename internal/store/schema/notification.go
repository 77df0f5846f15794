package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecotrace/ecotrace-core/internal/domain"
)

// Notification represents the notifications table - a message surfaced to a user.
// Writes are best-effort collaborators of admin actions and never roll back the
// core transaction.
type Notification struct {
	ID        uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID               `gorm:"column:user_id;type:uuid;not null;index"`
	Title     string                  `gorm:"column:title;not null;type:text"`
	Message   string                  `gorm:"column:message;not null;type:text"`
	Type      domain.NotificationType `gorm:"column:type;not null;default:info;type:text"`
	IsRead    bool                    `gorm:"column:is_read;not null;default:false"`
	ActionURL *string                 `gorm:"column:action_url;type:text"`
	CreatedAt time.Time               `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
