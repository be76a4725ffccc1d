// Package events handles event emission for reconciliation runs
package events

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/internal/tracing"
	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/models"
)

// EventTypeReconciliationCompleted is emitted after every successful run
const EventTypeReconciliationCompleted = "reconciliation.completed"

// Emitter publishes reconciliation lifecycle events
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitReconciliationCompleted emits a summary event for a finished run
func (e *Emitter) EmitReconciliationCompleted(ctx context.Context, result *models.ReconciliationResult) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitReconciliationCompleted")
	defer span.End()

	event := &kafka.ReconciliationEvent{
		EventType:           EventTypeReconciliationCompleted,
		RunID:               result.RunID.String(),
		ExpectedCount:       result.ExpectedCount,
		FoundCount:          len(result.Found),
		MissingCount:        len(result.Missing),
		ExtrasCount:         len(result.Extras),
		UsedFallbackPattern: result.UsedFallbackPattern,
	}

	if err := e.producer.PublishReconciliationEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"run_id": result.RunID,
		}).Warn("Failed to emit reconciliation completed event")
		return err
	}

	return nil
}
