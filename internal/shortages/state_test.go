package shortages

import (
	"testing"

	"github.com/stocksentry/stocksentry-backend/pkg/enums"
)

func TestStateForClaim(t *testing.T) {
	cases := []struct {
		name      string
		claimed   int
		shortfall int
		want      enums.ShortageState
	}{
		{name: "partial claim", claimed: 1, shortfall: 2, want: enums.ShortageStateRequestedPartial},
		{name: "exact claim", claimed: 2, shortfall: 2, want: enums.ShortageStateRequestedFull},
		{name: "over claim", claimed: 5, shortfall: 2, want: enums.ShortageStateRequestedFull},
		{name: "zero claim", claimed: 0, shortfall: 2, want: enums.ShortageStateRequestedPartial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StateForClaim(tc.claimed, tc.shortfall); got != tc.want {
				t.Fatalf("StateForClaim(%d, %d) = %s, want %s", tc.claimed, tc.shortfall, got, tc.want)
			}
		})
	}
}

func TestIsClaimable(t *testing.T) {
	claimable := []enums.ShortageState{
		enums.ShortageStateDetected,
		enums.ShortageStateRegistered,
		enums.ShortageStateRequestedPartial,
	}
	for _, state := range claimable {
		if !IsClaimable(state) {
			t.Errorf("expected %s to be claimable", state)
		}
	}

	notClaimable := []enums.ShortageState{
		enums.ShortageStateRequestedFull,
		enums.ShortageStateOrderGenerated,
		enums.ShortageStateInTransit,
		enums.ShortageStateResolved,
	}
	for _, state := range notClaimable {
		if IsClaimable(state) {
			t.Errorf("expected %s not to be claimable", state)
		}
	}
}

func TestIsActive(t *testing.T) {
	if IsActive(enums.ShortageStateResolved) {
		t.Fatalf("resolved must not be active")
	}
	for _, state := range []enums.ShortageState{
		enums.ShortageStateDetected,
		enums.ShortageStateRegistered,
		enums.ShortageStateRequestedPartial,
		enums.ShortageStateRequestedFull,
		enums.ShortageStateOrderGenerated,
		enums.ShortageStateInTransit,
	} {
		if !IsActive(state) {
			t.Errorf("expected %s to be active", state)
		}
	}
}

func TestAdvanceSourcesExcludeTerminalStates(t *testing.T) {
	for _, state := range OrderGeneratedSources() {
		if state == enums.ShortageStateResolved || state == enums.ShortageStateDetected {
			t.Errorf("unexpected order_generated source %s", state)
		}
	}
	for _, state := range InTransitSources() {
		if state == enums.ShortageStateResolved {
			t.Errorf("unexpected in_transit source %s", state)
		}
	}
}
