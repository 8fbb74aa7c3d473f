package shortages

import "github.com/stocksentry/stocksentry-backend/pkg/enums"

// The lifecycle is: detected -> registered -> requested_partial ->
// requested_full -> order_generated -> in_transit -> resolved, with
// resolution possible from any active state (stock recovery or order
// completion) and cancellation dropping a claimed shortage back to
// detected. resolved is terminal.

var claimableStates = []enums.ShortageState{
	enums.ShortageStateDetected,
	enums.ShortageStateRegistered,
	enums.ShortageStateRequestedPartial,
}

var orderGeneratedSources = []enums.ShortageState{
	enums.ShortageStateRequestedPartial,
	enums.ShortageStateRequestedFull,
}

var inTransitSources = []enums.ShortageState{
	enums.ShortageStateRequestedPartial,
	enums.ShortageStateRequestedFull,
	enums.ShortageStateOrderGenerated,
}

// IsActive reports whether the shortage still represents an open episode.
func IsActive(state enums.ShortageState) bool {
	return state != enums.ShortageStateResolved
}

// IsClaimable reports whether an order line may still claim against the
// shortage.
func IsClaimable(state enums.ShortageState) bool {
	for _, s := range claimableStates {
		if s == state {
			return true
		}
	}
	return false
}

// ClaimableStates returns the states an order line can claim against.
func ClaimableStates() []enums.ShortageState {
	states := make([]enums.ShortageState, len(claimableStates))
	copy(states, claimableStates)
	return states
}

// OrderGeneratedSources returns the states that may advance to
// order_generated when the linked order is generated.
func OrderGeneratedSources() []enums.ShortageState {
	states := make([]enums.ShortageState, len(orderGeneratedSources))
	copy(states, orderGeneratedSources)
	return states
}

// InTransitSources returns the states that may advance to in_transit when
// the linked order ships.
func InTransitSources() []enums.ShortageState {
	states := make([]enums.ShortageState, len(inTransitSources))
	copy(states, inTransitSources)
	return states
}

// StateForClaim computes the requested state after a claim mutation:
// requested_full once the claimed quantity covers the shortfall, otherwise
// requested_partial. Over-claiming is allowed and simply stays full.
func StateForClaim(claimedQty, shortfallQty int) enums.ShortageState {
	if claimedQty >= shortfallQty {
		return enums.ShortageStateRequestedFull
	}
	return enums.ShortageStateRequestedPartial
}
