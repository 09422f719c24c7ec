package app

import (
	"fmt"

	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
	DropFrame
)

// Policy decides what happens to a member whose send buffer is full.
type Policy interface {
	OnBackPressure(room domain.RoomName, member *core.Session) BackpressureAction
}

// SimplePolicy disconnects slow consumers.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.RoomName, *core.Session) BackpressureAction {
	return KickMember
}

// DropPolicy loses the frame for that member and keeps it connected.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(domain.RoomName, *core.Session) BackpressureAction {
	return DropFrame
}

func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return DropPolicy{}, nil
	case "kick":
		return SimplePolicy{}, nil
	}
	return nil, fmt.Errorf("unknown backpressure policy %q", name)
}

// JoinPolicy says whether join may create a missing room.
type JoinPolicy int

const (
	JoinStrict JoinPolicy = iota
	JoinLenient
)

func ParseJoinPolicy(name string) (JoinPolicy, error) {
	switch name {
	case "", "strict":
		return JoinStrict, nil
	case "lenient":
		return JoinLenient, nil
	}
	return JoinStrict, fmt.Errorf("unknown join policy %q", name)
}

func (p JoinPolicy) String() string {
	if p == JoinLenient {
		return "lenient"
	}
	return "strict"
}
