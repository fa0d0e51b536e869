package runtime

import (
	"fmt"
	"log/slog"
	"mediator-lab/contract"
	"mediator-lab/domain/event"
)

// eventFanout broadcasts routing events to in-process sinks.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// durability, or retries. A panicking sink is logged and skipped so that
// routing itself never depends on observers.
type eventFanout struct {
	log   *slog.Logger
	sinks []contract.EventSink
}

func newEventFanout(log *slog.Logger, sinks ...contract.EventSink) eventFanout {
	return eventFanout{log: log, sinks: sinks}
}

// Fanout One sink for each event
func (f eventFanout) Fanout(e event.DomainEvent) {
	for _, sink := range f.sinks {
		f.consume(sink, e)
	}
}

func (f eventFanout) consume(sink contract.EventSink, e event.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error("Sink panicked", "sink", fmt.Sprintf("%T", sink), "panic", r)
		}
	}()
	sink.Consume(e)
}
