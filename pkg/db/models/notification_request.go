package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stocksentry/stocksentry-backend/pkg/enums"
)

// NotificationRequest is a queued outbound message. ShortageID is null for
// system-level alerts. A null ScheduledFor means "send at the next
// processing pass".
type NotificationRequest struct {
	ID           uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShortageID   *uuid.UUID               `gorm:"column:shortage_id;type:uuid"`
	Channel      string                   `gorm:"column:channel;not null"`
	Title        string                   `gorm:"column:title;type:text;not null"`
	Message      string                   `gorm:"column:message;type:text;not null"`
	ScheduledFor *time.Time               `gorm:"column:scheduled_for;type:date"`
	Status       enums.NotificationStatus `gorm:"column:status;type:notification_status;not null;default:'pending'"`
	SentAt       *time.Time               `gorm:"column:sent_at;type:timestamptz"`
	CreatedAt    time.Time                `gorm:"column:created_at;autoCreateTime"`
}
