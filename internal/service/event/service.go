package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	"github.com/jwalitptl/booking-api/pkg/logger"
)

// Service records lifecycle events in the transactional outbox. The worker
// publishes them to the broker; emission failures never fail the operation
// that triggered them.
type Service struct {
	repo   repository.OutboxRepository
	logger *logger.Logger
}

func NewService(repo repository.OutboxRepository, logger *logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Emit records an event. Errors are logged, not returned: the event stream is
// an enrichment for downstream consumers, never a precondition.
func (s *Service) Emit(ctx context.Context, tenantID uuid.UUID, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error(err, "failed to marshal event payload", "event_type", eventType)
		return
	}

	evt := &model.OutboxEvent{
		TenantID:  tenantID,
		EventType: eventType,
		Payload:   data,
	}
	if err := s.repo.Create(ctx, evt); err != nil {
		s.logger.Error(fmt.Errorf("failed to record event: %w", err), "outbox write failed",
			"event_type", eventType)
	}
}
