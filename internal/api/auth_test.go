package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServer(t *testing.T, h http.HandlerFunc) *AuthClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewAuthClient(srv.URL)
}

func TestAuthClient_Login(t *testing.T) {
	a := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		var cred Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cred))
		assert.Equal(t, Credentials{Username: "a@b.co", Password: "pw"}, cred)
		w.Write([]byte(`{"token":"jwt-1"}`))
	})

	token, err := a.Login(context.Background(), Credentials{Username: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", token)
}

func TestAuthClient_LoginMissingToken(t *testing.T) {
	a := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	_, err := a.Login(context.Background(), Credentials{Username: "a@b.co", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), MsgSignInFailed)
}

func TestAuthClient_ServerMessageIsVerbatim(t *testing.T) {
	a := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid username or password"}`))
	})
	_, err := a.Login(context.Background(), Credentials{Username: "a@b.co", Password: "bad"})
	require.Error(t, err)
	assert.Equal(t, "Invalid username or password", err.Error())
}

func TestAuthClient_FallbackMessages(t *testing.T) {
	a := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"x"}`))
	})
	ctx := context.Background()

	_, err := a.Login(ctx, Credentials{Username: "a", Password: "b"})
	assert.Contains(t, err.Error(), MsgSignInFailed)

	err = a.Signup(ctx, Credentials{Username: "a", Password: "b"})
	assert.Contains(t, err.Error(), MsgRegisterFailed)

	err = a.ForgotPassword(ctx, "a")
	assert.Contains(t, err.Error(), MsgForgotFailed)
}

func TestAuthClient_ForgotPasswordBody(t *testing.T) {
	a := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forgot", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"username": "a@b.co"}, body)
	})
	require.NoError(t, a.ForgotPassword(context.Background(), "a@b.co"))
}
