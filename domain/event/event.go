package event

import (
	"time"

	"github.com/google/uuid"
)

type DomainEvent interface {
	SenderID() string
}

// MessageRouted is emitted once the mediator found the recipient,
// right before the message is handed to it.
type MessageRouted struct {
	ID      uuid.UUID `json:"id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

func (m MessageRouted) SenderID() string {
	return m.From
}

// MessageDeadLettered is emitted when no colleague is registered under To.
type MessageDeadLettered struct {
	ID      uuid.UUID `json:"id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

func (m MessageDeadLettered) SenderID() string {
	return m.From
}
