package enums

import "testing"

func TestParseShortageState(t *testing.T) {
	state, err := ParseShortageState("requested_partial")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != ShortageStateRequestedPartial {
		t.Fatalf("unexpected state %s", state)
	}

	if _, err := ParseShortageState("misplaced"); err == nil {
		t.Fatal("expected error for unknown state")
	}
	if ShortageState("misplaced").IsValid() {
		t.Fatal("unknown state must not validate")
	}
}

func TestParseReplenishmentOrderStatus(t *testing.T) {
	for _, raw := range []string{"pending", "generated", "in_transit", "completed", "cancelled"} {
		status, err := ParseReplenishmentOrderStatus(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if !status.IsValid() {
			t.Fatalf("parsed status %q must validate", raw)
		}
	}

	if _, err := ParseReplenishmentOrderStatus("canceled"); err == nil {
		t.Fatal("expected the collaborator spelling to be rejected")
	}
}

func TestParseNotificationFrequency(t *testing.T) {
	freq, err := ParseNotificationFrequency("weekly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if freq != NotificationFrequencyWeekly {
		t.Fatalf("unexpected frequency %s", freq)
	}

	if _, err := ParseNotificationFrequency("hourly"); err == nil {
		t.Fatal("expected error for unsupported frequency")
	}
}

func TestNotificationStatusIsValid(t *testing.T) {
	for _, status := range []NotificationStatus{NotificationStatusPending, NotificationStatusSent, NotificationStatusFailed} {
		if !status.IsValid() {
			t.Fatalf("expected %s to validate", status)
		}
	}
	if NotificationStatus("queued").IsValid() {
		t.Fatal("unknown status must not validate")
	}
}
