package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Messages shown when the auth service fails without explaining why.
const (
	MsgSignInFailed   = "Sign in failed"
	MsgRegisterFailed = "Registration failed"
	MsgForgotFailed   = "Failed to request password reset."
)

// Credentials is the body of /login and /signup. The service calls the
// email a username.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthClient talks to the auth service. It never sends a bearer token.
type AuthClient struct {
	c *Client
}

func NewAuthClient(baseURL string, opts ...Option) *AuthClient {
	return &AuthClient{c: NewClient(baseURL, nil, opts...)}
}

// Login exchanges credentials for a token.
func (a *AuthClient) Login(ctx context.Context, cred Credentials) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := a.c.call(ctx, http.MethodPost, "/login", nil, cred, &resp); err != nil {
		return "", authError(err, MsgSignInFailed)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%s: %w", MsgSignInFailed, ErrInvalidResponse)
	}
	return resp.Token, nil
}

// Signup registers a new account.
func (a *AuthClient) Signup(ctx context.Context, cred Credentials) error {
	if err := a.c.call(ctx, http.MethodPost, "/signup", nil, cred, nil); err != nil {
		return authError(err, MsgRegisterFailed)
	}
	return nil
}

// ForgotPassword asks the service to send a reset email.
func (a *AuthClient) ForgotPassword(ctx context.Context, username string) error {
	body := struct {
		Username string `json:"username"`
	}{username}
	if err := a.c.call(ctx, http.MethodPost, "/forgot", nil, body, nil); err != nil {
		return authError(err, MsgForgotFailed)
	}
	return nil
}

// authError keeps a server supplied message verbatim and otherwise
// prefixes the generic fallback.
func authError(err error, fallback string) error {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se
	}
	return fmt.Errorf("%s: %w", fallback, err)
}
