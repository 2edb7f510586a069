package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cccteam/ccc/accesstypes"
	"github.com/cccteam/httpio"
	"github.com/go-playground/errors/v5"
	"github.com/playline/backoffice/identity"
	"go.opentelemetry.io/otel"
)

// Token is the credential exchange response. AccessToken is treated as an
// opaque bearer string.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

// Login exchanges credentials for a bearer token. Invalid credentials are
// reported as an unauthorized message error the caller can surface.
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Client.Login()")
	defer span.End()

	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	token := &Token{}
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/api/login", req, token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, errors.New("login response missing access token")
	}

	return token, nil
}

// CurrentIdentity fetches the identity the bearer token belongs to.
func (c *Client) CurrentIdentity(ctx context.Context, bearer string) (*identity.Identity, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Client.CurrentIdentity()")
	defer span.End()

	ident := &identity.Identity{}
	if err := c.do(ctx, c.authClient(ctx, bearer), http.MethodGet, "/api/me", nil, ident); err != nil {
		return nil, err
	}

	return ident, nil
}

// RolePermissions fetches the permission names attached to a role.
func (c *Client) RolePermissions(ctx context.Context, bearer string, roleID int64) ([]accesstypes.Permission, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Client.RolePermissions()")
	defer span.End()

	role := &struct {
		ID          int64                    `json:"id"`
		Name        string                   `json:"name"`
		Permissions []accesstypes.Permission `json:"permissions"`
	}{}
	if err := c.do(ctx, c.authClient(ctx, bearer), http.MethodGet, fmt.Sprintf("/api/roles/%d", roleID), nil, role); err != nil {
		return nil, err
	}

	return role.Permissions, nil
}

// ForgotPassword requests a reset code for the account.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Client.ForgotPassword()")
	defer span.End()

	req := struct {
		Email string `json:"email"`
	}{Email: email}

	return c.do(ctx, c.httpClient, http.MethodPost, "/api/forgot-password", req, nil)
}

// VerifyResetCode checks a reset code previously sent to the account.
func (c *Client) VerifyResetCode(ctx context.Context, email, code string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Client.VerifyResetCode()")
	defer span.End()

	req := struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}{Email: email, Code: code}

	return c.do(ctx, c.httpClient, http.MethodPost, "/api/verify-reset-code", req, nil)
}

// ResetPassword sets a new password using a verified reset code.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Client.ResetPassword()")
	defer span.End()

	req := struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}{Email: email, Code: code, NewPassword: newPassword}

	return c.do(ctx, c.httpClient, http.MethodPost, "/api/reset-password", req, nil)
}

// do executes one request and decodes the response into out when it is
// non-nil. Upstream failure statuses are mapped to message errors so the
// cause is classifiable at the HTTP boundary.
func (c *Client) do(ctx context.Context, client *http.Client, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "json.Marshal()")
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return errors.Wrap(err, "http.NewRequestWithContext()")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "http.Client.Do()")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "json.Decoder.Decode()")
		}
	}

	return nil
}

// statusError maps an upstream failure status to a message error.
func statusError(resp *http.Response) error {
	msg := struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}{}
	_ = json.NewDecoder(resp.Body).Decode(&msg)

	text := msg.Message
	if text == "" {
		text = msg.Detail
	}
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return httpio.NewUnauthorizedMessage(text)
	case http.StatusForbidden:
		return httpio.NewForbiddenMessage(text)
	case http.StatusNotFound:
		return httpio.NewNotFoundMessage(text)
	case http.StatusBadRequest:
		return httpio.NewBadRequestMessage(text)
	default:
		return errors.Newf("upstream returned status %d: %s", resp.StatusCode, text)
	}
}
