package domain

import "fmt"

// transitions maps (current status, event) to the resulting status.
// Combinations absent from the map are illegal, except the special cases
// handled in NextStatus: pickup_started (log-only) and cancelled (any
// non-terminal status to rejected).
var transitions = map[ItemStatus]map[EventType]ItemStatus{
	ItemStatusPending: {
		EventTypeApproved: ItemStatusApproved,
		EventTypeRejected: ItemStatusRejected,
	},
	ItemStatusApproved: {
		EventTypeAssigned: ItemStatusAssigned,
	},
	ItemStatusAssigned: {
		EventTypeCollected: ItemStatusCollected,
	},
	ItemStatusCollected: {
		EventTypeInTransit: ItemStatusInTransit,
	},
	ItemStatusInTransit: {
		EventTypeArrivedFacility: ItemStatusArrivedFacility,
	},
	ItemStatusArrivedFacility: {
		EventTypeProcessed: ItemStatusProcessed,
	},
	ItemStatusProcessed: {
		EventTypeHandoff: ItemStatusCompleted,
	},
}

// NextStatus validates a lifecycle transition and returns the status the item
// moves to when the event is recorded. pickup_started is legal only while the
// item is assigned and leaves the status unchanged. cancelled is legal from
// any non-terminal status and lands in rejected.
func NextStatus(current ItemStatus, event EventType) (ItemStatus, error) {
	if event == EventTypePickupStarted {
		if current != ItemStatusAssigned {
			return "", fmt.Errorf("%w: event %q is not legal for status %q", ErrInvalidTransition, event, current)
		}
		return current, nil
	}

	if event == EventTypeCancelled {
		if current.IsTerminal() {
			return "", fmt.Errorf("%w: item in terminal status %q cannot be cancelled", ErrInvalidTransition, current)
		}
		return ItemStatusRejected, nil
	}

	next, ok := transitions[current][event]
	if !ok {
		return "", fmt.Errorf("%w: event %q is not legal for status %q", ErrInvalidTransition, event, current)
	}
	return next, nil
}

// ReplayStatus derives an item's status from its full ordered event history.
// The first event must be created; every later event must be a legal
// transition from the status accumulated so far.
func ReplayStatus(events []EventType) (ItemStatus, error) {
	if len(events) == 0 || events[0] != EventTypeCreated {
		return "", fmt.Errorf("%w: history must begin with a created event", ErrInvalidTransition)
	}

	status := ItemStatusPending
	for _, event := range events[1:] {
		next, err := NextStatus(status, event)
		if err != nil {
			return "", err
		}
		status = next
	}
	return status, nil
}
