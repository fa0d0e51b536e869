package sink

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mediator-lab/domain/event"

	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	metaKeyFrom = "from"
	metaKeyTo   = "to"
)

// DeadLetterSink republishes dead letters on an in-process topic so that
// other components can react to undeliverable messages.
// Publish failures are logged, never returned to the routing path.
type DeadLetterSink struct {
	publisher message.Publisher
	topic     string
	log       *slog.Logger
}

func NewDeadLetterSink(publisher message.Publisher, topic string, log *slog.Logger) DeadLetterSink {
	return DeadLetterSink{publisher: publisher, topic: topic, log: log}
}

func (d DeadLetterSink) Consume(e event.DomainEvent) {
	switch evt := e.(type) {
	case event.MessageDeadLettered:
		if err := d.publish(evt); err != nil {
			d.log.Error("Dead letter not published", "topic", d.topic, "from", evt.From, "error", err)
		}
	default:
		d.log.Debug(fmt.Sprintf("Not a dead letter : %T", evt))
	}
}

func (d DeadLetterSink) publish(evt event.MessageDeadLettered) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	msg := message.NewMessage(evt.ID.String(), payload)
	msg.Metadata.Set(metaKeyFrom, evt.From)
	msg.Metadata.Set(metaKeyTo, evt.To)
	return d.publisher.Publish(d.topic, msg)
}
