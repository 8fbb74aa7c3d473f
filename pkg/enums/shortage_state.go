package enums

import "fmt"

// ShortageState maps to the shortage_state enum in Postgres.
type ShortageState string

const (
	ShortageStateDetected         ShortageState = "detected"
	ShortageStateRegistered       ShortageState = "registered"
	ShortageStateRequestedPartial ShortageState = "requested_partial"
	ShortageStateRequestedFull    ShortageState = "requested_full"
	ShortageStateOrderGenerated   ShortageState = "order_generated"
	ShortageStateInTransit        ShortageState = "in_transit"
	ShortageStateResolved         ShortageState = "resolved"
)

var validShortageStates = []ShortageState{
	ShortageStateDetected,
	ShortageStateRegistered,
	ShortageStateRequestedPartial,
	ShortageStateRequestedFull,
	ShortageStateOrderGenerated,
	ShortageStateInTransit,
	ShortageStateResolved,
}

// IsValid checks whether the given state matches the canonical enum.
func (s ShortageState) IsValid() bool {
	for _, candidate := range validShortageStates {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShortageState converts raw strings into ShortageState.
func ParseShortageState(value string) (ShortageState, error) {
	for _, candidate := range validShortageStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shortage state %q", value)
}
