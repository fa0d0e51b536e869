package workers

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

func TestDeadLetterWorker_Consumes_Letters(t *testing.T) {
	req := require.New(t)
	log, recorder := logtest.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer bus.Close()
	letters, err := bus.Subscribe(ctx, topic)
	req.NoError(err)

	received := make(chan event.MessageDeadLettered, 1)
	worker := NewDeadLetterWorker(log, letters)
	worker.OnLetter = func(letter event.MessageDeadLettered) {
		received <- letter
	}
	stopped := make(chan error, 1)
	go func() { stopped <- worker.Run(ctx) }()

	// Given an undecodable letter and a valid one
	req.NoError(bus.Publish(topic, message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	letter := event.MessageDeadLettered{ID: uuid.New(), From: "user-1", To: "user-3", Content: "hi", At: time.Now().UTC()}
	payload, err := json.Marshal(letter)
	req.NoError(err)
	req.NoError(bus.Publish(topic, message.NewMessage(letter.ID.String(), payload)))

	// Then only the valid letter is handed over
	select {
	case got := <-received:
		req.Equal(letter.ID, got.ID)
		req.Equal("user-1", got.From)
		req.Equal("user-3", got.To)
		req.Equal("hi", got.Content)
	case <-time.After(time.Second):
		req.Fail("dead letter not consumed")
	}
	req.Eventually(func() bool {
		return len(recorder.Messages("Undecodable dead letter")) == 1
	}, time.Second, 10*time.Millisecond)
	req.Len(recorder.Messages("Dead letter received"), 1)

	// And the worker stops with its context
	cancel()
	select {
	case err := <-stopped:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("worker did not stop")
	}
}

func TestDeadLetterWorker_Stops_When_Subscription_Closes(t *testing.T) {
	req := require.New(t)
	log, _ := logtest.New()
	letters := make(chan *message.Message)
	close(letters)

	err := NewDeadLetterWorker(log, letters).Run(context.Background())

	req.NoError(err)
}
