package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stocksentry/stocksentry-backend/pkg/db/models"
	"github.com/stocksentry/stocksentry-backend/pkg/enums"
	"github.com/stocksentry/stocksentry-backend/pkg/logger"
)

type fakeDispatchRepo struct {
	eligible []models.NotificationRequest
	listErr  error

	sent   []uuid.UUID
	failed []uuid.UUID
}

func (f *fakeDispatchRepo) ListEligible(context.Context, time.Time, int) ([]models.NotificationRequest, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.eligible, nil
}

func (f *fakeDispatchRepo) MarkSent(_ context.Context, id uuid.UUID, _ time.Time) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeDispatchRepo) MarkFailed(_ context.Context, id uuid.UUID) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakeSender struct {
	failFor map[uuid.UUID]bool
	sent    []uuid.UUID
}

func (f *fakeSender) Send(_ context.Context, request *models.NotificationRequest) error {
	if f.failFor[request.ID] {
		return errors.New("transport refused")
	}
	f.sent = append(f.sent, request.ID)
	return nil
}

func pendingRequest() models.NotificationRequest {
	return models.NotificationRequest{
		ID:      uuid.New(),
		Channel: "email",
		Title:   "Low stock: Widget",
		Message: "Widget dropped below its minimum.",
		Status:  enums.NotificationStatusPending,
	}
}

func newDispatchJob(t *testing.T, repo *fakeDispatchRepo, sender *fakeSender) Job {
	t.Helper()
	job, err := NewNotificationDispatchJob(NotificationDispatchJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Repository: repo,
		Sender:     sender,
	})
	if err != nil {
		t.Fatalf("NewNotificationDispatchJob: %v", err)
	}
	return job
}

func TestNotificationDispatchJobSendsAndMarks(t *testing.T) {
	first := pendingRequest()
	second := pendingRequest()
	repo := &fakeDispatchRepo{eligible: []models.NotificationRequest{first, second}}
	sender := &fakeSender{}
	job := newDispatchJob(t, repo, sender)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(sender.sent))
	}
	if len(repo.sent) != 2 || len(repo.failed) != 0 {
		t.Fatalf("expected 2 marked sent and none failed, got %d/%d", len(repo.sent), len(repo.failed))
	}
}

func TestNotificationDispatchJobContinuesPastSendFailures(t *testing.T) {
	broken := pendingRequest()
	healthy := pendingRequest()
	repo := &fakeDispatchRepo{eligible: []models.NotificationRequest{broken, healthy}}
	sender := &fakeSender{failFor: map[uuid.UUID]bool{broken.ID: true}}
	job := newDispatchJob(t, repo, sender)

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if len(repo.failed) != 1 || repo.failed[0] != broken.ID {
		t.Fatalf("expected broken request marked failed, got %v", repo.failed)
	}
	if len(repo.sent) != 1 || repo.sent[0] != healthy.ID {
		t.Fatalf("expected healthy request marked sent, got %v", repo.sent)
	}
}

func TestNotificationDispatchJobNoEligibleRequests(t *testing.T) {
	repo := &fakeDispatchRepo{}
	sender := &fakeSender{}
	job := newDispatchJob(t, repo, sender)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no sends, got %d", len(sender.sent))
	}
}

func TestNotificationDispatchJobPropagatesListErrors(t *testing.T) {
	repo := &fakeDispatchRepo{listErr: errors.New("db down")}
	job := newDispatchJob(t, repo, &fakeSender{})

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
