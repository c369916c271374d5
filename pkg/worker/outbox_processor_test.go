package worker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/pkg/logger"
	"github.com/jwalitptl/booking-api/pkg/metrics"
)

var (
	testLogger  = logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	testMetrics = metrics.NewMetrics("worker_test")
)

type fakeOutbox struct {
	pending      []*model.OutboxEvent
	processed    []uuid.UUID
	failed       map[uuid.UUID]string
	deleteCutoff time.Time
	deleteCount  int64
	deleteErr    error
	deleteCalled bool
}

func (f *fakeOutbox) Create(ctx context.Context, event *model.OutboxEvent) error { return nil }

func (f *fakeOutbox) GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	if limit < len(f.pending) {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutbox) MarkEventProcessed(ctx context.Context, id uuid.UUID) error {
	f.processed = append(f.processed, id)
	return nil
}

func (f *fakeOutbox) MarkEventFailed(ctx context.Context, id uuid.UUID, errorMessage string) error {
	if f.failed == nil {
		f.failed = map[uuid.UUID]string{}
	}
	f.failed[id] = errorMessage
	return nil
}

func (f *fakeOutbox) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	f.deleteCalled = true
	f.deleteCutoff = before
	return f.deleteCount, f.deleteErr
}

type fakeBroker struct {
	published []string
	err       error
}

func (f *fakeBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, channel)
	return nil
}

func (f *fakeBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

func (f *fakeBroker) Healthy() bool { return f.err == nil }
func (f *fakeBroker) Close() error  { return nil }

func pendingEvent(eventType string) *model.OutboxEvent {
	return &model.OutboxEvent{
		ID:        uuid.New(),
		TenantID:  uuid.New(),
		EventType: eventType,
		Payload:   []byte(`{}`),
		Status:    model.OutboxStatusPending,
	}
}

func TestProcessEventsPublishesAndMarks(t *testing.T) {
	repo := &fakeOutbox{pending: []*model.OutboxEvent{
		pendingEvent(model.EventAppointmentBooked),
		pendingEvent(model.EventAppointmentCancelled),
	}}
	broker := &fakeBroker{}
	p := NewOutboxProcessor(repo, broker, OutboxProcessorConfig{}, testLogger, testMetrics)

	require.NoError(t, p.processEvents(context.Background()))

	assert.Equal(t, []string{model.EventAppointmentBooked, model.EventAppointmentCancelled}, broker.published)
	assert.Len(t, repo.processed, 2)
	assert.Empty(t, repo.failed)
}

func TestProcessEventsMarksFailedOnPublishError(t *testing.T) {
	evt := pendingEvent(model.EventAppointmentBooked)
	repo := &fakeOutbox{pending: []*model.OutboxEvent{evt}}
	broker := &fakeBroker{err: errors.New("redis unreachable")}
	p := NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		RetryAttempts: 1,
		RetryDelay:    time.Millisecond,
	}, testLogger, testMetrics)

	require.NoError(t, p.processEvents(context.Background()), "a failed event is recorded, not fatal")
	assert.Empty(t, repo.processed)
	assert.Contains(t, repo.failed[evt.ID], "redis unreachable")
}

func TestCleanupProcessedUsesRetentionCutoff(t *testing.T) {
	repo := &fakeOutbox{deleteCount: 42}
	p := NewOutboxProcessor(repo, &fakeBroker{}, OutboxProcessorConfig{
		RetentionPeriod: 24 * time.Hour,
	}, testLogger, testMetrics)

	before := time.Now().Add(-24 * time.Hour)
	require.NoError(t, p.cleanupProcessed(context.Background()))
	after := time.Now().Add(-24 * time.Hour)

	require.True(t, repo.deleteCalled)
	assert.False(t, repo.deleteCutoff.Before(before))
	assert.False(t, repo.deleteCutoff.After(after))
}

func TestCleanupProcessedPropagatesError(t *testing.T) {
	repo := &fakeOutbox{deleteErr: errors.New("deadlock detected")}
	p := NewOutboxProcessor(repo, &fakeBroker{}, OutboxProcessorConfig{}, testLogger, testMetrics)

	assert.Error(t, p.cleanupProcessed(context.Background()))
}

func TestConfigDefaults(t *testing.T) {
	p := NewOutboxProcessor(&fakeOutbox{}, &fakeBroker{}, OutboxProcessorConfig{}, testLogger, testMetrics)

	assert.Equal(t, 100, p.config.BatchSize)
	assert.Equal(t, 5*time.Second, p.config.PollInterval)
	assert.Equal(t, 3, p.config.RetryAttempts)
	assert.Equal(t, time.Second, p.config.RetryDelay)
	assert.Equal(t, 7*24*time.Hour, p.config.RetentionPeriod)
	assert.Equal(t, time.Hour, p.config.CleanupInterval)
}
