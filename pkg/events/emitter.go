// Package events handles event emission for preference lifecycle changes
package events

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Emitter publishes preference lifecycle events. A nil producer turns the
// emitter into a no-op so local setups can run without Kafka.
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

// EmitPreferenceSaved emits a preference.saved event carrying the
// normalized preference.
func (e *Emitter) EmitPreferenceSaved(ctx context.Context, userType string, pref matching.Preference) error {
	if e == nil || e.producer == nil {
		return nil
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitPreferenceSaved")
	defer span.End()

	payload := map[string]any{
		"schema_version": SchemaVersion,
		"preference":     pref,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := &kafka.PreferenceEvent{
		EventType: "preference.saved",
		UserID:    pref.UserID,
		UserType:  userType,
		Data:      data,
	}

	if err := e.producer.PublishPreferenceEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit preference.saved event")
		return err
	}

	return nil
}
