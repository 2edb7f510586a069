package permission

import (
	"context"
	"sync"

	"github.com/cccteam/ccc/accesstypes"
	"github.com/go-playground/errors/v5"
	"github.com/playline/backoffice/identity"
	"go.opentelemetry.io/otel"
)

// RoleFetcher looks up the permission names attached to a role in the
// upstream API. The bearer token of the requesting session is forwarded.
type RoleFetcher interface {
	RolePermissions(ctx context.Context, bearer string, roleID int64) ([]accesstypes.Permission, error)
}

// Resolver derives the permission set for an identity from its role id.
// Lookups are cached in a Store and deduplicated, so concurrent requests
// for the same role trigger a single upstream fetch.
type Resolver struct {
	fetcher RoleFetcher
	store   Store

	mu       sync.Mutex
	inflight map[int64]*flight
}

type flight struct {
	done  chan struct{}
	perms []accesstypes.Permission
	err   error
}

// NewResolver creates a Resolver backed by the given store.
func NewResolver(fetcher RoleFetcher, store Store) *Resolver {
	return &Resolver{
		fetcher:  fetcher,
		store:    store,
		inflight: make(map[int64]*flight),
	}
}

// Peek returns the current access snapshot without triggering a lookup.
// A nil identity resolves to an empty, authoritative set, so an anonymous
// caller is denied rather than kept waiting.
func (r *Resolver) Peek(ctx context.Context, ident *identity.Identity) Access {
	if ident == nil {
		return Access{Actor: identity.ActorUnclassified, Set: Set{}, State: StateResolved}
	}

	access := Access{Actor: ident.Classify()}

	perms, ok, err := r.store.Get(ctx, ident.Role.ID)
	if err == nil && ok {
		access.Set = NewSet(perms...)
		access.State = StateResolved

		return access
	}

	r.mu.Lock()
	_, resolving := r.inflight[ident.Role.ID]
	r.mu.Unlock()

	if resolving {
		access.State = StateResolving
	}

	return access
}

// Resolve returns the access snapshot for the identity, fetching the role
// permissions from upstream on a cache miss. It blocks until the set is
// known or the lookup fails.
func (r *Resolver) Resolve(ctx context.Context, bearer string, ident *identity.Identity) (Access, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Resolver.Resolve()")
	defer span.End()

	if ident == nil {
		return Access{Actor: identity.ActorUnclassified, Set: Set{}, State: StateResolved}, nil
	}

	access := Access{Actor: ident.Classify()}

	perms, ok, err := r.store.Get(ctx, ident.Role.ID)
	if err != nil {
		return access, errors.Wrap(err, "permission.Store.Get()")
	}
	if !ok {
		perms, err = r.fetch(ctx, bearer, ident.Role.ID)
		if err != nil {
			return access, err
		}
	}

	access.Set = NewSet(perms...)
	access.State = StateResolved

	return access, nil
}

// HasPermission reports whether the identity holds the permission. It
// never fails: a nil identity, an empty requirement, or a lookup error
// all map to a boolean. Callers that must distinguish "unknown" from
// "denied" use Peek or Resolve instead.
func (r *Resolver) HasPermission(ctx context.Context, bearer string, ident *identity.Identity, perm accesstypes.Permission) bool {
	if perm == "" {
		return true
	}
	if ident == nil {
		return false
	}

	access, err := r.Resolve(ctx, bearer, ident)
	if err != nil {
		return false
	}

	return access.Set.Has(perm)
}

// fetch performs the upstream lookup, collapsing concurrent callers for
// the same role onto a single request.
func (r *Resolver) fetch(ctx context.Context, bearer string, roleID int64) ([]accesstypes.Permission, error) {
	r.mu.Lock()
	if f, ok := r.inflight[roleID]; ok {
		r.mu.Unlock()
		select {
		case <-f.done:
			return f.perms, f.err
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "context.Context.Done()")
		}
	}

	f := &flight{done: make(chan struct{})}
	r.inflight[roleID] = f
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.inflight, roleID)
		r.mu.Unlock()
		close(f.done)
	}()

	perms, err := r.fetcher.RolePermissions(ctx, bearer, roleID)
	if err != nil {
		f.err = errors.Wrap(err, "RoleFetcher.RolePermissions()")

		return nil, f.err
	}

	if err := r.store.Put(ctx, roleID, perms); err != nil {
		f.err = errors.Wrap(err, "permission.Store.Put()")

		return nil, f.err
	}

	f.perms = perms

	return perms, nil
}
