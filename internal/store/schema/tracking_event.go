package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ecotrace/ecotrace-core/internal/domain"
)

// TrackingEvent represents the tracking_events table - one immutable fact in an
// item's history. Rows are append-only; ordering is by created_at with the
// insertion id as tiebreaker.
type TrackingEvent struct {
	// ID is the event's primary key
	ID uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	// Seq is a monotonically increasing insertion order, the tiebreaker for
	// events sharing a timestamp
	Seq int64 `gorm:"column:seq;autoIncrement;uniqueIndex"`
	// ItemID references the item this event belongs to
	ItemID uuid.UUID `gorm:"column:item_id;type:uuid;not null;index"`
	// EventType is the lifecycle event recorded
	EventType domain.EventType `gorm:"column:event_type;not null;type:text"`
	// ActorUserID is the user that caused the event, if any
	ActorUserID *uuid.UUID `gorm:"column:actor_user_id;type:uuid"`
	// ActorOrgID is the organization that caused the event, if any
	ActorOrgID *uuid.UUID `gorm:"column:actor_org_id;type:uuid"`
	Latitude   *float64   `gorm:"column:latitude;type:double precision"`
	Longitude  *float64   `gorm:"column:longitude;type:double precision"`
	Notes      *string    `gorm:"column:notes;type:text"`
	// Meta carries structured context, e.g. the redeemed token id for scan events
	Meta      datatypes.JSON `gorm:"column:meta;type:jsonb"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TrackingEvent model
func (TrackingEvent) TableName() string {
	return "tracking_events"
}
