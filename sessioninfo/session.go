package sessioninfo

import (
	"context"
	"fmt"
	"net/http"
)

// ctxKey is a type for storing values in the request context
type ctxKey string

const (
	// CtxSessionInfo is the key used to store the SessionInfo in the context.
	CtxSessionInfo ctxKey = "sessionInfo"
	// CtxAccessInfo is the key used to store the AccessInfo in the context.
	CtxAccessInfo ctxKey = "accessInfo"
)

// FromRequest returns the session information from the request context.
func FromRequest(r *http.Request) *SessionInfo {
	return FromCtx(r.Context())
}

// FromCtx returns the session information from the context.
func FromCtx(ctx context.Context) *SessionInfo {
	sessionInfo, ok := ctx.Value(CtxSessionInfo).(*SessionInfo)
	if !ok {
		panic(fmt.Sprintf("failed to find %s in request context", CtxSessionInfo))
	}

	return sessionInfo
}

// AccessFromRequest returns the access information from the request context.
func AccessFromRequest(r *http.Request) *AccessInfo {
	return AccessFromCtx(r.Context())
}

// AccessFromCtx returns the access information from the context.
func AccessFromCtx(ctx context.Context) *AccessInfo {
	accessInfo, ok := ctx.Value(CtxAccessInfo).(*AccessInfo)
	if !ok {
		panic(fmt.Sprintf("failed to find %s in request context", CtxAccessInfo))
	}

	return accessInfo
}
