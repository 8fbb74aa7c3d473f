package enums

import "fmt"

// NotificationStatus maps to the notification_status enum in Postgres.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

var validNotificationStatuses = []NotificationStatus{
	NotificationStatusPending,
	NotificationStatusSent,
	NotificationStatusFailed,
}

func (s NotificationStatus) IsValid() bool {
	for _, candidate := range validNotificationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// NotificationFrequency controls when a scheduled notification becomes
// eligible for delivery.
type NotificationFrequency string

const (
	NotificationFrequencyImmediate NotificationFrequency = "immediate"
	NotificationFrequencyDaily     NotificationFrequency = "daily"
	NotificationFrequencyWeekly    NotificationFrequency = "weekly"
)

var validNotificationFrequencies = []NotificationFrequency{
	NotificationFrequencyImmediate,
	NotificationFrequencyDaily,
	NotificationFrequencyWeekly,
}

func (f NotificationFrequency) IsValid() bool {
	for _, candidate := range validNotificationFrequencies {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseNotificationFrequency converts raw strings into NotificationFrequency.
func ParseNotificationFrequency(value string) (NotificationFrequency, error) {
	for _, candidate := range validNotificationFrequencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification frequency %q", value)
}
