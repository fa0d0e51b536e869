package runtime

import "mediator-lab/contract"

func RegistryOf[I contract.Identifier, C contract.Colleague[I]](b *Broker[I, C]) *Registry[I, Registered[I, C]] {
	return b.registry
}

// Poison simulates a holder panicking with the write lock held.
func Poison[I comparable, V any](r *Registry[I, V]) {
	defer func() { _ = recover() }()
	_ = r.Write(func(map[I]V) {
		panic("boom")
	})
}
