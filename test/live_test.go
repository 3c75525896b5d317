//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/trainingdiary/internal/diary"
	"github.com/2beens/trainingdiary/internal/live"
	"github.com/2beens/trainingdiary/internal/nutrition"
)

type liveMessage struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func (s *IntegrationTestSuite) TestLiveUpdates() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	token := s.signUp(ctx, "live@example.com").Token

	wsURL := "ws" + strings.TrimPrefix(serverEndpoint, "http") + "/live?token=" + token
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	defer conn.Close()

	seen := map[string]bool{}
	for len(seen) < 3 {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg liveMessage
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Empty(t, msg.Error)
		seen[msg.Type] = true
	}
	assert.True(t, seen[live.MessageProfile])
	assert.True(t, seen[live.MessageWorkouts])
	assert.True(t, seen[live.MessageNutrition])

	addResp := s.doRequest(ctx, http.MethodPost, "/nutrition", token, nutrition.Input{
		FoodName:     "Greek Yogurt",
		ProteinGrams: 20,
		CarbGrams:    8,
		FatGrams:     4,
	})
	require.Equal(t, http.StatusCreated, addResp.StatusCode)

	for {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg liveMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type != live.MessageNutrition || len(msg.Data) == 0 {
			continue
		}
		var entries []diary.NutritionLogEntry
		require.NoError(t, json.Unmarshal(msg.Data, &entries))
		if len(entries) == 0 {
			continue
		}
		assert.Equal(t, "Greek Yogurt", entries[0].FoodName)
		return
	}
}

func (s *IntegrationTestSuite) TestLiveRequiresSession() {
	wsURL := "ws" + strings.TrimPrefix(serverEndpoint, "http") + "/live"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(s.T(), err)
	require.NotNil(s.T(), resp)
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
}
