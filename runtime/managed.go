package runtime

import "mediator-lab/contract"

// Mediator routes messages between colleagues registered under an identifier.
type Mediator[I contract.Identifier, C contract.Colleague[I]] interface {
	Register(id I, managed *Managed[I, C]) (Registered[I, C], error)
	Consult(from C, to I, msg string) error
}

// Member is a colleague able to bind itself to a mediator.
type Member[I contract.Identifier, C contract.Colleague[I]] interface {
	contract.Colleague[I]
	Register(mediator Mediator[I, C]) *Managed[I, C]
}

// Managed couples a colleague with the mediator it will be registered with.
// It only lives between the colleague's Register and the mediator's Register.
type Managed[I contract.Identifier, C contract.Colleague[I]] struct {
	colleague C
	mediator  Mediator[I, C]
}

func NewManaged[I contract.Identifier, C contract.Colleague[I]](colleague C, mediator Mediator[I, C]) *Managed[I, C] {
	return &Managed[I, C]{colleague: colleague, mediator: mediator}
}

func (m *Managed[I, C]) ID() I {
	return m.colleague.ID()
}

func (m *Managed[I, C]) Colleague() C {
	return m.colleague
}

// Registered is the handle returned by a mediator once a colleague is registered.
// Copies share the same underlying Managed value, so copying is cheap and
// every copy behaves the same way.
type Registered[I contract.Identifier, C contract.Colleague[I]] struct {
	managed *Managed[I, C]
}

func (r Registered[I, C]) Clone() Registered[I, C] {
	return Registered[I, C]{managed: r.managed}
}

func (r Registered[I, C]) ID() I {
	return r.managed.colleague.ID()
}

func (r Registered[I, C]) Receive(msg string) {
	r.managed.colleague.Receive(msg)
}

func (r Registered[I, C]) Colleague() C {
	return r.managed.colleague
}

// AsMediator returns the mediator the colleague was bound to.
func (r Registered[I, C]) AsMediator() Mediator[I, C] {
	return r.managed.mediator
}

// SendMsg asks the bound mediator to route msg to the colleague registered under to.
// An unknown recipient is not an error.
func (r Registered[I, C]) SendMsg(to I, msg string) error {
	return r.AsMediator().Consult(r.managed.colleague, to, msg)
}
