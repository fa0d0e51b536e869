package sink

import (
	"bytes"
	"mediator-lab/domain/event"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type unknownEvent struct{}

func (unknownEvent) SenderID() string { return "nobody" }

func TestTimeline_Consume_Keeps_Arrival_Order(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	// When routed and dead lettered events are consumed
	timeline.Consume(event.MessageRouted{ID: uuid.New(), From: "user-1", To: "user-2", Content: "hi", At: at})
	timeline.Consume(event.MessageDeadLettered{ID: uuid.New(), From: "user-1", To: "user-3", Content: "hi", At: at})
	timeline.Consume(unknownEvent{})

	// Then both are journaled, unknown events ignored
	req.Equal([]Entry{
		{Outcome: OutcomeRouted, From: "user-1", To: "user-2", Content: "hi", At: at},
		{Outcome: OutcomeDeadLettered, From: "user-1", To: "user-3", Content: "hi", At: at},
	}, timeline.Entries())
	req.Equal(1, timeline.Count(OutcomeRouted))
	req.Equal(1, timeline.Count(OutcomeDeadLettered))
}

func TestTimeline_Render(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	timeline.Consume(event.MessageRouted{ID: uuid.New(), From: "user-1", To: "user-2", Content: "hello there", At: time.Now().UTC()})

	var out bytes.Buffer
	timeline.Render(&out)

	req.Contains(out.String(), "OUTCOME")
	req.Contains(out.String(), "routed")
	req.Contains(out.String(), "hello there")
}
