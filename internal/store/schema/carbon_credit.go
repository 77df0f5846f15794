package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecotrace/ecotrace-core/internal/domain"
)

// CarbonCredit represents the carbon_credits table - one carbon-credit transaction.
// A user's balance is always recomputed from the full entry history. The partial
// unique index on (ewaste_item_id) for earned entries guarantees at most one award
// per item even under concurrent approvals.
type CarbonCredit struct {
	// ID is the entry's primary key
	ID uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	// UserID is the account the entry applies to
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	// EwasteItemID references the approved item for earned entries
	EwasteItemID *uuid.UUID `gorm:"column:ewaste_item_id;type:uuid"`
	// CreditsEarned is the amount granted by an earned entry
	CreditsEarned float64 `gorm:"column:credits_earned;not null;default:0;type:numeric"`
	// CreditsUsed is the amount consumed by a redeemed or transferred entry
	CreditsUsed *float64 `gorm:"column:credits_used;type:numeric"`
	// TransactionType is earned, redeemed, or transferred
	TransactionType domain.CreditTransactionType `gorm:"column:transaction_type;not null;type:text"`
	Description     *string                      `gorm:"column:description;type:text"`
	CreatedAt       time.Time                    `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the CarbonCredit model
func (CarbonCredit) TableName() string {
	return "carbon_credits"
}
