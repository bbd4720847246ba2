package consumer

import (
	"context"
	"encoding/json"

	"leavedesk/internal/events"
	"leavedesk/internal/notifier"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle dispatches lifecycle events to the notifier.
// Messages are always committed: notification delivery is best-effort
// and the notifier swallows its own failures.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notifierService notifier.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		eventType := headerValue(msg, "event_type")
		switch eventType {
		case events.TypeLeaveSubmitted:
			var event events.LeaveSubmittedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Error("decode leave_submitted event failed", zap.Error(err))
			} else {
				notifierService.HandleSubmitted(ctx, event)
			}

		case events.TypeLeaveApproved, events.TypeLeaveRejected:
			var event events.LeaveDecidedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Error("decode leave decision event failed",
					zap.String("event_type", eventType),
					zap.Error(err),
				)
			} else {
				notifierService.HandleDecided(ctx, event)
			}

		default:
			log.Warn("unknown leave lifecycle event type, skipping",
				zap.String("event_type", eventType),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
		}
	}
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
