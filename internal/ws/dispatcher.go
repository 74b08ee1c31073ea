package ws

import (
	"encoding/json"

	"go.uber.org/zap"

	"messaging-service/internal/domain"
)

// DeliveryReport records which members received a live push and which were
// skipped. Skipped members fetch the message later through the message list.
type DeliveryReport struct {
	Delivered []uint `json:"delivered"`
	Missed    []uint `json:"missed"`
}

// Dispatcher fans a persisted message out to every member with a live
// connection. It is invoked synchronously after persistence, so delivery
// order per conversation matches persistence order.
type Dispatcher struct {
	registry *Registry
	logger   *zap.Logger
}

func NewDispatcher(registry *Registry, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		logger:   logger,
	}
}

// Deliver pushes the message to each connected member, the sender included.
// Absent or unwritable connections are skipped silently; no retry, no queue.
func (d *Dispatcher) Deliver(message *domain.Message, memberIDs []uint) DeliveryReport {
	var report DeliveryReport

	payload, err := json.Marshal(Envelope{Type: TypeNewMessage, Data: message})
	if err != nil {
		d.logger.Error("failed to marshal message envelope",
			zap.Uint("messageId", message.ID),
			zap.Error(err))
		report.Missed = append(report.Missed, memberIDs...)
		return report
	}

	for _, userID := range memberIDs {
		client, ok := d.registry.Lookup(userID)
		if !ok {
			report.Missed = append(report.Missed, userID)
			continue
		}
		if !client.enqueue(payload) {
			d.logger.Debug("dropped push to slow or closing connection",
				zap.Uint("userId", userID),
				zap.Uint("messageId", message.ID))
			report.Missed = append(report.Missed, userID)
			continue
		}
		report.Delivered = append(report.Delivered, userID)
	}

	return report
}
