package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"mediator-lab/domain/event"

	"github.com/ThreeDotsLabs/watermill/message"
)

// DeadLetterWorker drains the dead-letter topic.
// Every letter is logged, acknowledged, then handed to OnLetter when set.
// Undecodable payloads are acknowledged and dropped, a redelivery would fail the same way.
type DeadLetterWorker struct {
	log      *slog.Logger
	letters  <-chan *message.Message
	OnLetter func(event.MessageDeadLettered)
}

// NewDeadLetterWorker consumes an already opened subscription, so that
// a restart after a panic keeps reading the same stream.
func NewDeadLetterWorker(log *slog.Logger, letters <-chan *message.Message) *DeadLetterWorker {
	return &DeadLetterWorker{log: log, letters: letters}
}

func (w *DeadLetterWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping dead letter consumption")
			return nil
		case msg, ok := <-w.letters:
			if !ok {
				w.log.Debug("Dead letter subscription closed")
				return nil
			}
			w.handle(msg)
		}
	}
}

func (w *DeadLetterWorker) handle(msg *message.Message) {
	var letter event.MessageDeadLettered
	if err := json.Unmarshal(msg.Payload, &letter); err != nil {
		w.log.Error("Undecodable dead letter", "msg_id", msg.UUID, "error", err)
		msg.Ack()
		return
	}
	w.log.Warn("Dead letter received", "msg_id", msg.UUID, "from", letter.From, "to", letter.To, "content", letter.Content)
	msg.Ack()
	if w.OnLetter != nil {
		w.OnLetter(letter)
	}
}
