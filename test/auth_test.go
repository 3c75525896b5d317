//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authStateResponse struct {
	User *struct {
		UserID string `json:"uid"`
		Email  string `json:"email"`
	} `json:"user"`
}

func (s *IntegrationTestSuite) TestAuth() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	session := s.signUp(ctx, "auth-flow@example.com")
	require.NotEmpty(t, session.Token)

	resp := s.doRequest(ctx, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    "auth-flow@example.com",
		"password": "testpass",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.doRequest(ctx, http.MethodPost, "/auth/signin", "", map[string]string{
		"email":    "auth-flow@example.com",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.doRequest(ctx, http.MethodPost, "/auth/signin", "", map[string]string{
		"email":    "AUTH-FLOW@example.com",
		"password": "testpass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.doRequest(ctx, http.MethodGet, "/auth/state", session.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decodeBody[authStateResponse](s, resp)
	require.NotNil(t, state.User)
	assert.Equal(t, session.Identity.UserID, state.User.UserID)

	resp = s.doRequest(ctx, http.MethodPost, "/auth/signout", session.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.doRequest(ctx, http.MethodGet, "/auth/state", session.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, decodeBody[authStateResponse](s, resp).User)

	resp = s.doRequest(ctx, http.MethodGet, "/profile", session.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
