package notifier

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry-backend/pkg/db/models"
	"github.com/stocksentry/stocksentry-backend/pkg/enums"
	pkgerrors "github.com/stocksentry/stocksentry-backend/pkg/errors"
	"github.com/stocksentry/stocksentry-backend/pkg/logger"
)

// LabelResolver resolves the display label for a product reference.
type LabelResolver interface {
	Label(ctx context.Context, ref models.ProductRef) string
}

// Scheduler decides whether and when a notification is queued. It is
// invoked once per shortage-open event; reconciliation never re-triggers
// it.
type Scheduler interface {
	ShortageOpened(ctx context.Context, tx *gorm.DB, shortage *models.Shortage) error
	ScheduleSystemAlert(ctx context.Context, title, message string) error
}

// SchedulerParams configure the notification scheduler.
type SchedulerParams struct {
	Requests RequestRepository
	Configs  ConfigRepository
	Labels   LabelResolver
	Logger   *logger.Logger
	Channel  string
}

type scheduler struct {
	requests RequestRepository
	configs  ConfigRepository
	labels   LabelResolver
	logg     *logger.Logger
	channel  string
	now      func() time.Time
}

// NewScheduler wires scheduler dependencies.
func NewScheduler(params SchedulerParams) (Scheduler, error) {
	if params.Requests == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "request repository required")
	}
	if params.Configs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "config repository required")
	}
	if params.Labels == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "label resolver required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	if params.Channel == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "channel required")
	}
	return &scheduler{
		requests: params.Requests,
		configs:  params.Configs,
		labels:   params.Labels,
		logg:     params.Logger,
		channel:  params.Channel,
		now:      time.Now,
	}, nil
}

// ShortageOpened queues one request for the freshly opened shortage inside
// the opening transaction. An inactive or missing channel config means no
// notification at all.
func (s *scheduler) ShortageOpened(ctx context.Context, tx *gorm.DB, shortage *models.Shortage) error {
	cfg, err := s.configs.FindActive(ctx, s.channel)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read notification config")
	}
	if cfg == nil {
		channelCtx := s.logg.WithChannel(ctx, s.channel)
		s.logg.Info(channelCtx, "notifications inactive for channel, skipping")
		return nil
	}

	label := s.labels.Label(ctx, shortage.Ref())
	scheduledFor := s.scheduleDate(cfg.Frequency)

	request := &models.NotificationRequest{
		ShortageID:   &shortage.ID,
		Channel:      s.channel,
		Title:        fmt.Sprintf("Low stock: %s", label),
		Message: fmt.Sprintf(
			"%s dropped to %d, which is %d below its configured minimum.",
			label, shortage.OriginalQty, shortage.ShortfallQty,
		),
		ScheduledFor: &scheduledFor,
		Status:       enums.NotificationStatusPending,
	}
	if err := s.requests.WithTx(tx).Create(ctx, request); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue shortage notification")
	}

	requestCtx := s.logg.WithFields(ctx, map[string]any{
		"shortage_id":   shortage.ID.String(),
		"scheduled_for": scheduledFor.Format("2006-01-02"),
		"frequency":     cfg.Frequency,
	})
	s.logg.Info(requestCtx, "shortage notification queued")
	return nil
}

// ScheduleSystemAlert queues a shortage-independent message using the same
// frequency rules.
func (s *scheduler) ScheduleSystemAlert(ctx context.Context, title, message string) error {
	if title == "" || message == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "alert title and message required")
	}

	cfg, err := s.configs.FindActive(ctx, s.channel)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read notification config")
	}
	if cfg == nil {
		return nil
	}

	scheduledFor := s.scheduleDate(cfg.Frequency)
	request := &models.NotificationRequest{
		Channel:      s.channel,
		Title:        title,
		Message:      message,
		ScheduledFor: &scheduledFor,
		Status:       enums.NotificationStatusPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue system alert")
	}
	return nil
}

// scheduleDate computes the delivery date from the configured frequency.
// weekly pushes a flat seven days out without consulting send_days; the
// delivery processor owns day-of-week handling.
func (s *scheduler) scheduleDate(frequency enums.NotificationFrequency) time.Time {
	today := truncateToDate(s.now().UTC())
	switch frequency {
	case enums.NotificationFrequencyDaily:
		return today.AddDate(0, 0, 1)
	case enums.NotificationFrequencyWeekly:
		return today.AddDate(0, 0, 7)
	default:
		return today
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
