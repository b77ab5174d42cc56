// Package roles defines the fixed role set of the platform and the
// seniority order that both account creation and coin transfers are
// gated on. Level 1 is the most senior; levels strictly increase
// going down the hierarchy.
package roles

import (
	"errors"
	"fmt"
)

type Role string

const (
	Root   Role = "root"
	Master Role = "master"
	Agent  Role = "agent"
	Player Role = "player"
)

var ErrUnknownRole = errors.New("unknown role")

// levels is the single source of truth for seniority.
var levels = map[Role]int{
	Root:   1,
	Master: 2,
	Agent:  3,
	Player: 4,
}

// Parse validates a role name coming from the outside (request payloads,
// database rows). Anything not in the fixed set is rejected here so the
// authorization logic never compares free-form strings.
func Parse(name string) (Role, error) {
	r := Role(name)
	if _, ok := levels[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, name)
	}

	return r, nil
}

// Level returns the seniority level; 1 is the most senior.
func (r Role) Level() int {
	return levels[r]
}

// Outranks reports whether r is strictly more senior than other.
func (r Role) Outranks(other Role) bool {
	return levels[r] < levels[other]
}

// CanCreate reports whether an account with role r may create an account
// with role target. Only strictly junior roles may be created.
func (r Role) CanCreate(target Role) bool {
	return r.Outranks(target)
}

// CanSendTransfers reports whether the role may be the sender of a
// transfer. The most junior role never sends.
func (r Role) CanSendTransfers() bool {
	return r != Player
}

// CanPlaceBets reports whether the role may place bets. Only the most
// junior role bets.
func (r Role) CanPlaceBets() bool {
	return r == Player
}

// TransfersToAnyone reports whether the role is exempt from the
// direct-child transfer gate.
func (r Role) TransfersToAnyone() bool {
	return r == Root
}
