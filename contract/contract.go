//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"fmt"
	"mediator-lab/domain/event"
	"reflect"
)

// Identifier names a participant inside one mediator.
// Equality and hashing are the ones of a Go map key.
type Identifier interface {
	comparable
	fmt.Stringer
}

// Colleague is any participant kind able to receive a message routed by a mediator.
type Colleague[I Identifier] interface {
	ID() I
	Receive(msg string)
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink observes routing outcomes.
// Consume is called synchronously from the routing path and must not block.
type EventSink interface {
	Consume(e event.DomainEvent)
}
