package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecotrace/ecotrace-core/internal/domain"
)

// Item represents the ewaste_items table - a submitted device tracked through disposal.
// The status column is a cache of the latest tracking event; both are written in the
// same transaction and must never disagree.
type Item struct {
	// ID is the item's primary key
	ID uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	// UserID is the submitting owner
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	// ItemName is the device's display name
	ItemName string `gorm:"column:item_name;not null;type:text"`
	// Category is the device category (laptop, phone, appliance, ...)
	Category string `gorm:"column:category;not null;type:text"`
	Brand    *string `gorm:"column:brand;type:text"`
	Model    *string `gorm:"column:model;type:text"`
	// SerialNumber is the manufacturer serial, if declared
	SerialNumber *string `gorm:"column:serial_number;type:text"`
	// Condition is the declared condition: working, non-working, or damaged
	Condition *string `gorm:"column:condition;type:text"`
	// EstimatedValue is the declared resale value
	EstimatedValue *float64 `gorm:"column:estimated_value;type:numeric"`
	PickupLocation *string  `gorm:"column:pickup_location;type:text"`
	// Status is the current lifecycle status, maintained solely by the state machine
	// and the admin gateway
	Status domain.ItemStatus `gorm:"column:status;not null;default:pending;type:text;index"`
	// QRCode is the static QR payload printed for the item
	QRCode      *string `gorm:"column:qr_code;type:text"`
	Description *string `gorm:"column:description;type:text"`
	// WeightKg is the declared weight in kilograms
	WeightKg *float64 `gorm:"column:weight_kg;type:numeric"`
	// SubmissionDate is when the owner submitted the item
	SubmissionDate *time.Time `gorm:"column:submission_date;type:timestamptz"`
	// CollectionDate is set on approval
	CollectionDate *time.Time `gorm:"column:collection_date;type:timestamptz"`
	// ProcessingDate is set when the item reaches processed
	ProcessingDate *time.Time `gorm:"column:processing_date;type:timestamptz"`
	// CarbonCreditsEarned mirrors the earned credit ledger entry for this item;
	// non-negative, only increased via the credit ledger
	CarbonCreditsEarned float64   `gorm:"column:carbon_credits_earned;not null;default:0;type:numeric"`
	CreatedAt           time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt           time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	TrackingEvents []TrackingEvent `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Assignments    []Assignment    `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	QRTokens       []QRToken       `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Item model
func (Item) TableName() string {
	return "ewaste_items"
}
