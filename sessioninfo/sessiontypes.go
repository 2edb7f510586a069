// sessioninfo package carries session and access information through the
// request context.
package sessioninfo

import (
	"time"

	"github.com/cccteam/ccc"
	"github.com/playline/backoffice/identity"
	"github.com/playline/backoffice/permission"
)

// SessionInfo is the durable session record. BearerToken is the opaque
// upstream token exchanged at login; it never leaves the gateway.
type SessionInfo struct {
	ID          ccc.UUID
	Username    string
	BearerToken string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Expired     bool
}

// AccessInfo is the identity and access snapshot attached to a request
// once the session has been verified.
type AccessInfo struct {
	Identity *identity.Identity
	Access   permission.Access
}
