package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/stocksentry/stocksentry-backend/pkg/enums"
)

// NotificationConfig is operator-managed and read-only to this service.
// SendDays/SendHour are stored for the delivery processor; scheduling does
// not consult them (observed behavior of the weekly frequency, kept as-is).
type NotificationConfig struct {
	Channel   string                      `gorm:"column:channel;primaryKey"`
	Active    bool                        `gorm:"column:active;not null;default:true"`
	Frequency enums.NotificationFrequency `gorm:"column:frequency;type:notification_frequency;not null;default:'immediate'"`
	SendDays  pq.StringArray              `gorm:"column:send_days;type:text[]"`
	SendHour  int                         `gorm:"column:send_hour;not null;default:8"`
	UpdatedAt time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}
