package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecotrace/ecotrace-core/internal/domain"
)

// QRToken represents the qr_tokens table - a capability granting one scoped action
// on one item. A token marked used or past its expiry is permanently inert. View
// tokens are never marked used.
type QRToken struct {
	// ID is the token's primary key
	ID uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	// ItemID references the item the token grants access to
	ItemID uuid.UUID `gorm:"column:item_id;type:uuid;not null;index"`
	// Token is the random, unguessable token string presented by scanners
	Token string `gorm:"column:token;not null;uniqueIndex;type:text"`
	// Purpose scopes the action: view, handoff, pickup, or process
	Purpose domain.TokenPurpose `gorm:"column:purpose;not null;type:text"`
	// ExpiresAt is the expiry instant; nil means the token never expires
	ExpiresAt *time.Time `gorm:"column:expires_at;type:timestamptz"`
	// Used marks a consumed single-use token
	Used bool `gorm:"column:used;not null;default:false"`
	// CreatedBy is the user that issued the token
	CreatedBy *uuid.UUID `gorm:"column:created_by;type:uuid"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the QRToken model
func (QRToken) TableName() string {
	return "qr_tokens"
}
