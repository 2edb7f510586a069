// Package identity defines the signed-in principal as reported by the
// backoffice API and the actor classification derived from it.
package identity

import (
	"strings"
	"time"
)

// Role is the single role assigned to an identity. Permissions are not
// carried here; they are resolved from the role id (see the permission
// package).
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Team is the team an identity belongs to, when any.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"team_name"`
}

// Agent is the agent an identity operates as, when any.
type Agent struct {
	ID   int64  `json:"id"`
	Name string `json:"agent_name"`
}

// Identity is the authenticated principal returned by the upstream /api/me
// endpoint. It is replaced wholesale whenever it is refetched and is never
// mutated in place.
type Identity struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Team      *Team     `json:"team"`
	Agent     *Agent    `json:"agent"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the identity is enabled upstream.
func (i *Identity) Active() bool {
	return i != nil && strings.EqualFold(i.Status, "active")
}
