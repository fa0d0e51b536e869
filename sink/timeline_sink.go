package sink

import (
	"io"
	"mediator-lab/domain/event"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

type Outcome string

const (
	OutcomeRouted       Outcome = "routed"
	OutcomeDeadLettered Outcome = "dead-letter"
)

// Entry is one routing decision taken by the mediator.
type Entry struct {
	Outcome Outcome
	From    string
	To      string
	Content string
	At      time.Time
}

// Timeline holds a simple local journal of routing outcomes, in arrival order.
type Timeline struct {
	mu      sync.Mutex
	entries []Entry
}

func NewTimeline() *Timeline {
	return &Timeline{
		entries: nil,
	}
}

func (t *Timeline) Consume(e event.DomainEvent) {
	var entry Entry
	switch evt := e.(type) {
	case event.MessageRouted:
		entry = Entry{Outcome: OutcomeRouted, From: evt.From, To: evt.To, Content: evt.Content, At: evt.At}
	case event.MessageDeadLettered:
		entry = Entry{Outcome: OutcomeDeadLettered, From: evt.From, To: evt.To, Content: evt.Content, At: evt.At}
	default:
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
}

// Entries returns a copy of the journal.
func (t *Timeline) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Entry(nil), t.entries...)
}

func (t *Timeline) Count(outcome Outcome) int {
	return lo.CountBy(t.Entries(), func(e Entry) bool {
		return e.Outcome == outcome
	})
}

// Render writes the journal as a table.
func (t *Timeline) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"At", "Outcome", "From", "To", "Content"})
	table.AppendBulk(lo.Map(t.Entries(), func(e Entry, _ int) []string {
		return []string{e.At.Format(time.RFC3339Nano), string(e.Outcome), e.From, e.To, e.Content}
	}))
	table.Render()
}
