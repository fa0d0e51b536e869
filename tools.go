//go:build tools
// +build tools

// Package tools pins the code generators used by `go generate`.
//
// Nothing here is compiled into the binary: the blank import keeps mockgen
// in go.mod so that regenerating mocks/ works on a fresh checkout.
package mediator_lab

import (
	_ "go.uber.org/mock/mockgen"
)
