//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/2beens/trainingdiary/internal/auth"
)

func pingPostgres(port string) error {
	db, err := sql.Open("postgres", fmt.Sprintf(
		"postgres://postgres@localhost:%s/%s?sslmode=disable", port, testDBName,
	))
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Ping()
}

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path, token string, body any) *http.Response {
	t := s.T()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, &reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](s *IntegrationTestSuite, resp *http.Response) T {
	var v T
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// signUp creates a fresh account and returns its session.
func (s *IntegrationTestSuite) signUp(ctx context.Context, email string) auth.Session {
	resp := s.doRequest(ctx, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    email,
		"password": "testpass",
	})
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	return decodeBody[auth.Session](s, resp)
}
