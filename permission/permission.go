// Package permission resolves the permission set for an identity from its
// role and answers permission and actor checks for the guard and the
// navigation filter. Role lookups go through the upstream API and are
// cached with an explicit tri-state so "still loading" is never reported
// as "denied".
package permission

import (
	"github.com/cccteam/ccc/accesstypes"
	"github.com/playline/backoffice/identity"
)

const name = "github.com/playline/backoffice/permission"

// State is the resolution state of a permission set.
type State int

const (
	// StateUnknown means no lookup has completed for the role yet.
	StateUnknown State = iota
	// StateResolving means a lookup is in flight.
	StateResolving
	// StateResolved means the set is authoritative.
	StateResolved
)

// Set is the set of permission names granted to an identity.
type Set map[accesstypes.Permission]struct{}

// NewSet builds a Set from a list of permission names.
func NewSet(perms ...accesstypes.Permission) Set {
	s := make(Set, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}

	return s
}

// Has reports strict membership.
func (s Set) Has(p accesstypes.Permission) bool {
	_, ok := s[p]

	return ok
}

// List returns the members in unspecified order.
func (s Set) List() []accesstypes.Permission {
	perms := make([]accesstypes.Permission, 0, len(s))
	for p := range s {
		perms = append(perms, p)
	}

	return perms
}

// Access is a point-in-time snapshot of everything the guard and the
// navigation filter need to make a decision. Both operate on the same
// snapshot type so they can never disagree about what is accessible.
type Access struct {
	Actor identity.Actor
	Set   Set
	State State
}

// Known reports whether the permission set is authoritative. Decisions
// must not treat an unknown set as denied.
func (a Access) Known() bool {
	return a.State == StateResolved
}

// Allows reports whether the required permission passes. An empty
// requirement places no restriction and always passes; an unknown set
// denies nothing and allows nothing beyond that.
func (a Access) Allows(required accesstypes.Permission) bool {
	if required == "" {
		return true
	}

	return a.Known() && a.Set.Has(required)
}

// AllowsActor reports whether the actor requirement passes. Membership is
// a logical OR over the required set; an empty set always passes.
func (a Access) AllowsActor(required ...identity.Actor) bool {
	return a.Actor.In(required...)
}
