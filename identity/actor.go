package identity

import "strings"

// Actor is the coarse-grained classification of an identity, used for
// route and menu gating alongside fine-grained permissions.
type Actor string

const (
	ActorSuperAdmin   Actor = "super-admin"
	ActorTeam         Actor = "team-actor"
	ActorAgent        Actor = "agent-actor"
	ActorUnclassified Actor = ""
)

// privilegedRoles are role names that classify as super-admin when the
// identity has no team and no agent affiliation.
var privilegedRoles = []string{"super admin"}

// Classify maps an identity to exactly one Actor. A team without an agent
// classifies as team-actor, a team with an agent as agent-actor, and a
// privileged role name with neither as super-admin. Every other shape,
// including a nil identity, is unclassified.
func (i *Identity) Classify() Actor {
	if i == nil {
		return ActorUnclassified
	}

	switch {
	case i.Team != nil && i.Agent != nil:
		return ActorAgent
	case i.Team != nil:
		return ActorTeam
	case i.Agent == nil && privilegedRole(i.Role.Name):
		return ActorSuperAdmin
	default:
		return ActorUnclassified
	}
}

// In reports whether the actor is a member of the required set. An empty
// required set places no restriction and always passes. An unclassified
// actor never satisfies a non-empty set.
func (a Actor) In(required ...Actor) bool {
	if len(required) == 0 {
		return true
	}
	if a == ActorUnclassified {
		return false
	}
	for _, r := range required {
		if a == r {
			return true
		}
	}

	return false
}

func privilegedRole(name string) bool {
	for _, r := range privilegedRoles {
		if strings.EqualFold(name, r) {
			return true
		}
	}

	return false
}
