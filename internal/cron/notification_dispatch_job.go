package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/stocksentry/stocksentry-backend/internal/notifier"
	"github.com/stocksentry/stocksentry-backend/pkg/db/models"
	"github.com/stocksentry/stocksentry-backend/pkg/logger"
)

const defaultDispatchBatch = 100

type NotificationDispatchJobParams struct {
	Logger     *logger.Logger
	Repository dispatchRequestRepo
	Sender     notifier.Sender
	BatchSize  int
}

type dispatchRequestRepo interface {
	ListEligible(ctx context.Context, asOf time.Time, limit int) ([]models.NotificationRequest, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

// NewNotificationDispatchJob builds the job that delivers due notification
// requests. Eligibility is date based: pending requests whose scheduled
// date is today or earlier, or that carry no date at all.
func NewNotificationDispatchJob(params NotificationDispatchJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("request repository required")
	}
	if params.Sender == nil {
		return nil, fmt.Errorf("sender required")
	}
	batch := params.BatchSize
	if batch <= 0 {
		batch = defaultDispatchBatch
	}
	return &notificationDispatchJob{
		logg:   params.Logger,
		repo:   params.Repository,
		sender: params.Sender,
		batch:  batch,
		now:    time.Now,
	}, nil
}

type notificationDispatchJob struct {
	logg   *logger.Logger
	repo   dispatchRequestRepo
	sender notifier.Sender
	batch  int
	now    func() time.Time
}

func (j *notificationDispatchJob) Name() string { return "notification-dispatch" }

func (j *notificationDispatchJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	requests, err := j.repo.ListEligible(ctx, now, j.batch)
	if err != nil {
		return fmt.Errorf("list eligible notifications: %w", err)
	}
	if len(requests) == 0 {
		return nil
	}

	var sent, failed int
	var errs error
	for i := range requests {
		request := &requests[i]
		if sendErr := j.sender.Send(ctx, request); sendErr != nil {
			failed++
			errs = multierr.Append(errs, fmt.Errorf("send notification %s: %w", request.ID, sendErr))
			if markErr := j.repo.MarkFailed(ctx, request.ID); markErr != nil {
				errs = multierr.Append(errs, fmt.Errorf("mark notification %s failed: %w", request.ID, markErr))
			}
			continue
		}
		if markErr := j.repo.MarkSent(ctx, request.ID, now); markErr != nil {
			errs = multierr.Append(errs, fmt.Errorf("mark notification %s sent: %w", request.ID, markErr))
			continue
		}
		sent++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"eligible": len(requests),
		"sent":     sent,
		"failed":   failed,
	})
	j.logg.Info(logCtx, "notification dispatch complete")
	return errs
}
