package domain

import (
	"mediator-lab/internal/logtest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserID_Structural_Equality(t *testing.T) {
	req := require.New(t)

	req.Equal(NewUserID("user-1"), NewUserID("user-1"))
	req.NotEqual(NewUserID("user-1"), NewUserID("user-2"))
	req.Equal("user-1", NewUserID("user-1").String())

	// Empty identifiers are accepted as any other
	req.Equal(UserID(""), NewUserID(""))

	seen := map[UserID]int{NewUserID("user-1"): 1}
	req.Equal(1, seen[NewUserID("user-1")])
}

func TestUser_Receive_Traces_Message(t *testing.T) {
	req := require.New(t)
	log, recorder := logtest.New()
	user := NewUser(NewUserID("user-2"), log)

	user.Receive("hi")

	records := recorder.Records()
	req.Len(records, 1)
	req.Equal("[user-2] hi", records[0].Message)
	req.Equal("user-2", records[0].Attrs["participant"])
	req.Equal("hi", records[0].Attrs["content"])
}

func TestUser_Register_Binds_Mediator(t *testing.T) {
	req := require.New(t)
	log, recorder := logtest.New()
	mediator := NewUserMediator(log)
	user := NewUser(NewUserID("user-1"), log)

	// When the user binds itself to the mediator
	managed := user.Register(mediator)

	// Then nothing is registered yet
	req.Equal(user.ID(), managed.ID())
	req.Equal(user, managed.Colleague())
	members, err := mediator.Members()
	req.NoError(err)
	req.Empty(members)
	req.Empty(recorder.Records())

	// And the registered handle exposes the bound mediator
	registered, err := mediator.Register(user.ID(), managed)
	req.NoError(err)
	req.Same(mediator, registered.AsMediator())
	req.Equal(user, registered.Colleague())
}

func TestUser_String(t *testing.T) {
	log, _ := logtest.New()
	require.Equal(t, "User id:user-1", NewUser(NewUserID("user-1"), log).String())
}
