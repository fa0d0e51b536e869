package sink

import (
	"context"
	"encoding/json"
	"mediator-lab/domain/event"
	"mediator-lab/internal/logtest"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const topic = "mediator.deadletter"

type failingPublisher struct{}

func (failingPublisher) Publish(string, ...*message.Message) error { return context.Canceled }
func (failingPublisher) Close() error                                { return nil }

func TestDeadLetterSink_Publishes_Dead_Letters(t *testing.T) {
	req := require.New(t)
	log, _ := logtest.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer bus.Close()
	letters, err := bus.Subscribe(ctx, topic)
	req.NoError(err)
	deadLetterSink := NewDeadLetterSink(bus, topic, log)

	// When a routed event then a dead letter are consumed
	deadLetterSink.Consume(event.MessageRouted{ID: uuid.New(), From: "user-1", To: "user-2", Content: "hi"})
	letter := event.MessageDeadLettered{ID: uuid.New(), From: "user-1", To: "user-3", Content: "hi", At: time.Now().UTC()}
	deadLetterSink.Consume(letter)

	// Then only the dead letter reaches the topic
	select {
	case msg := <-letters:
		msg.Ack()
		req.Equal(letter.ID.String(), msg.UUID)
		req.Equal("user-1", msg.Metadata.Get(metaKeyFrom))
		req.Equal("user-3", msg.Metadata.Get(metaKeyTo))
		var got event.MessageDeadLettered
		req.NoError(json.Unmarshal(msg.Payload, &got))
		req.Equal(letter.ID, got.ID)
		req.Equal("hi", got.Content)
	case <-time.After(time.Second):
		req.Fail("dead letter not published")
	}

	select {
	case msg := <-letters:
		req.Failf("unexpected message", "got %s", msg.UUID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDeadLetterSink_Publish_Failure_Is_Logged(t *testing.T) {
	req := require.New(t)
	log, recorder := logtest.New()
	deadLetterSink := NewDeadLetterSink(failingPublisher{}, topic, log)

	req.NotPanics(func() {
		deadLetterSink.Consume(event.MessageDeadLettered{ID: uuid.New(), From: "user-1", To: "user-3", Content: "hi"})
	})

	failures := recorder.Messages("Dead letter not published")
	req.Len(failures, 1)
	req.Equal("user-1", failures[0].Attrs["from"])
}
