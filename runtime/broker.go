// Package runtime handles registration and routing of messages between colleagues.
// It orchestrates the system without containing participant behavior.
package runtime

import (
	"log/slog"
	"mediator-lab/contract"
	"mediator-lab/domain/event"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Broker is the mediator implementation.
// Clones share the registry: they are handles to the same logical broker.
type Broker[I contract.Identifier, C contract.Colleague[I]] struct {
	log      *slog.Logger
	registry *Registry[I, Registered[I, C]]
	fanout   eventFanout
}

func NewBroker[I contract.Identifier, C contract.Colleague[I]](log *slog.Logger, sinks ...contract.EventSink) *Broker[I, C] {
	return &Broker[I, C]{
		log:      log,
		registry: NewRegistry[I, Registered[I, C]](),
		fanout:   newEventFanout(log, sinks...),
	}
}

func (b *Broker[I, C]) Clone() *Broker[I, C] {
	clone := *b
	return &clone
}

// Register stores managed under id, replacing silently any previous entry.
// The returned handle aliases the one kept by the registry.
func (b *Broker[I, C]) Register(id I, managed *Managed[I, C]) (Registered[I, C], error) {
	registered := Registered[I, C]{managed: managed}
	if err := b.registry.Store(id, registered); err != nil {
		return Registered[I, C]{}, err
	}
	b.log.Debug("Colleague registered", "id", id.String())
	return registered.Clone(), nil
}

// Consult routes msg from a colleague to the one registered under to.
// The recipient receives the message on the calling goroutine, once the
// registry lock is released. An unknown recipient is reported as a dead
// letter and the call still succeeds: only a poisoned registry fails it.
func (b *Broker[I, C]) Consult(from C, to I, msg string) error {
	recipient, found, err := b.registry.Load(to)
	if err != nil {
		return err
	}

	sender := from.ID().String()
	if !found {
		b.log.Warn("Message drifted over to dead letter", "from", sender, "to", to.String(), "content", msg)
		b.fanout.Fanout(event.MessageDeadLettered{
			ID:      uuid.New(),
			From:    sender,
			To:      to.String(),
			Content: msg,
			At:      time.Now().UTC(),
		})
		return nil
	}

	b.log.Info("Message routed", "from", sender, "to", to.String(), "content", msg)
	b.fanout.Fanout(event.MessageRouted{
		ID:      uuid.New(),
		From:    sender,
		To:      to.String(),
		Content: msg,
		At:      time.Now().UTC(),
	})
	recipient.Receive(msg)
	return nil
}

// Unregister removes the entry for id. Handles already given out stay usable.
func (b *Broker[I, C]) Unregister(id I) (bool, error) {
	removed, err := b.registry.Delete(id)
	if err != nil {
		return false, err
	}
	if removed {
		b.log.Debug("Colleague unregistered", "id", id.String())
	}
	return removed, nil
}

func (b *Broker[I, C]) Lookup(id I) (Registered[I, C], bool, error) {
	return b.registry.Load(id)
}

// Members lists the registered identifiers ordered by their string form.
func (b *Broker[I, C]) Members() ([]I, error) {
	ids, err := b.registry.Keys()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ids, func(x, y I) int {
		return strings.Compare(x.String(), y.String())
	})
	return ids, nil
}
