package notifier

import (
	"context"

	"github.com/stocksentry/stocksentry-backend/pkg/db/models"
	"github.com/stocksentry/stocksentry-backend/pkg/logger"
)

// Sender hands an eligible request to a delivery transport. Transports are
// owned by the platform; the worker only decides eligibility and records
// the outcome.
type Sender interface {
	Send(ctx context.Context, request *models.NotificationRequest) error
}

// LogSender writes the notification to the service log instead of a real
// transport. It is the default sender for environments without a delivery
// integration.
type LogSender struct {
	logg *logger.Logger
}

// NewLogSender builds the log-backed sender.
func NewLogSender(logg *logger.Logger) *LogSender {
	return &LogSender{logg: logg}
}

func (s *LogSender) Send(ctx context.Context, request *models.NotificationRequest) error {
	sendCtx := s.logg.WithFields(ctx, map[string]any{
		"notification_id": request.ID.String(),
		"channel":         request.Channel,
		"title":           request.Title,
	})
	s.logg.Info(sendCtx, "notification dispatched to log")
	return nil
}
