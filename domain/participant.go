// Package domain contains core concepts of the messaging system.
// This file defines the User participant and its identifier.
// Routing and registry logic belong to the runtime package.
package domain

import (
	"fmt"
	"log/slog"
	"mediator-lab/contract"
	"mediator-lab/runtime"
)

// UserID is the identifier of a User. Any string is accepted, including the empty one.
type UserID string

func NewUserID(id string) UserID {
	return UserID(id)
}

func (id UserID) String() string {
	return string(id)
}

// User is the participant kind demonstrated by the system.
// Its identifier is fixed at construction.
type User struct {
	id  UserID
	log *slog.Logger
}

type (
	UserMediator   = runtime.Broker[UserID, User]
	ManagedUser    = runtime.Managed[UserID, User]
	RegisteredUser = runtime.Registered[UserID, User]
)

var (
	_ runtime.Member[UserID, User]   = User{}
	_ runtime.Mediator[UserID, User] = (*UserMediator)(nil)
)

func NewUser(id UserID, log *slog.Logger) User {
	return User{id: id, log: log}
}

func (u User) ID() UserID {
	return u.id
}

// Receive reads the message. It is the observable end of a delivery.
func (u User) Receive(msg string) {
	u.log.Info(fmt.Sprintf("[%s] %s", u.id, msg), "participant", u.id.String(), "content", msg)
}

// Register binds the user to a mediator. The result is meant to be handed
// straight to the mediator's own Register.
func (u User) Register(mediator runtime.Mediator[UserID, User]) *ManagedUser {
	return runtime.NewManaged(u, mediator)
}

func (u User) String() string {
	return fmt.Sprintf("User id:%s", u.id)
}

// NewUserMediator creates an empty mediator for users.
// Clones of the returned mediator share its registry.
func NewUserMediator(log *slog.Logger, sinks ...contract.EventSink) *UserMediator {
	return runtime.NewBroker[UserID, User](log, sinks...)
}
