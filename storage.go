package backoffice

import (
	"context"
	"time"

	cloudspanner "cloud.google.com/go/spanner"
	"github.com/cccteam/ccc"
	"github.com/go-playground/errors/v5"
	"github.com/playline/backoffice/dbtypes"
	"github.com/playline/backoffice/postgres"
	"github.com/playline/backoffice/sessioninfo"
	"github.com/playline/backoffice/spanner"
	"go.opentelemetry.io/otel"
)

// storageDriver is the surface shared by the postgres and spanner drivers.
type storageDriver interface {
	Session(ctx context.Context, sessionID ccc.UUID) (*dbtypes.Session, error)
	InsertSession(ctx context.Context, session *dbtypes.InsertSession) (ccc.UUID, error)
	UpdateSessionActivity(ctx context.Context, sessionID ccc.UUID) error
	DestroySession(ctx context.Context, sessionID ccc.UUID) error
}

// sessionStorage adapts a database driver to the SessionStorage interface.
type sessionStorage struct {
	db storageDriver
}

// NewPostgresSessionStorage creates SessionStorage backed by PostgreSQL.
func NewPostgresSessionStorage(conn postgres.Queryer) SessionStorage {
	return &sessionStorage{db: postgres.NewSessionStorageDriver(conn)}
}

// NewSpannerSessionStorage creates SessionStorage backed by Spanner.
func NewSpannerSessionStorage(client *cloudspanner.Client) SessionStorage {
	return &sessionStorage{db: spanner.NewSessionStorageDriver(client)}
}

// NewSession inserts a new session row holding the upstream bearer token.
func (s *sessionStorage) NewSession(ctx context.Context, username, bearerToken string) (ccc.UUID, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "sessionStorage.NewSession()")
	defer span.End()

	session := &dbtypes.InsertSession{
		Username:    username,
		BearerToken: bearerToken,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	id, err := s.db.InsertSession(ctx, session)
	if err != nil {
		return ccc.NilUUID, errors.Wrap(err, "db.InsertSession()")
	}

	return id, nil
}

// Session returns the session information from the database for given sessionID
func (s *sessionStorage) Session(ctx context.Context, sessionID ccc.UUID) (*sessioninfo.SessionInfo, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "sessionStorage.Session()")
	defer span.End()

	si, err := s.db.Session(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "db.Session()")
	}

	return &sessioninfo.SessionInfo{
		ID:          si.ID,
		Username:    si.Username,
		BearerToken: si.BearerToken,
		CreatedAt:   si.CreatedAt,
		UpdatedAt:   si.UpdatedAt,
		Expired:     si.Expired,
	}, nil
}

// UpdateSessionActivity updates the database with the current time for the session activity
func (s *sessionStorage) UpdateSessionActivity(ctx context.Context, sessionID ccc.UUID) error {
	ctx, span := otel.Tracer(name).Start(ctx, "sessionStorage.UpdateSessionActivity()")
	defer span.End()

	if err := s.db.UpdateSessionActivity(ctx, sessionID); err != nil {
		return errors.Wrap(err, "db.UpdateSessionActivity()")
	}

	return nil
}

// DestroySession marks the session as expired and clears its bearer token
func (s *sessionStorage) DestroySession(ctx context.Context, sessionID ccc.UUID) error {
	ctx, span := otel.Tracer(name).Start(ctx, "sessionStorage.DestroySession()")
	defer span.End()

	if err := s.db.DestroySession(ctx, sessionID); err != nil {
		return errors.Wrap(err, "db.DestroySession()")
	}

	return nil
}
