//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/2beens/workoutcal/internal/api"
	"github.com/2beens/workoutcal/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestUnauthorized() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	status, _ := s.do(ctx, "", http.MethodGet, "/events", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, status)

	status, body := s.do(ctx, "", http.MethodGet, "/version", nil)
	assert.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), "test-version-info", string(body))
}

func (s *IntegrationTestSuite) TestEventsLifecycle() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	token := s.issueToken(ctx, "integration-user")

	status, body := s.do(ctx, token, http.MethodGet, "/events", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Empty(t, decodeInto[api.EventsResponse](s, body).Events)

	status, body = s.do(ctx, token, http.MethodPut, "/draft", api.DraftRequest{Title: "legs", Color: "#00ff00"})
	require.Equal(t, http.StatusOK, status, string(body))
	workoutID := decodeInto[workout.DraftSnapshot](s, body).WorkoutID
	require.NotEmpty(t, workoutID)

	status, _ = s.do(ctx, token, http.MethodPost, "/draft/exercises/squat/open", nil)
	require.Equal(t, http.StatusOK, status)
	status, body = s.do(ctx, token, http.MethodPost, "/draft/exercises/squat/sets", workout.Set{
		Weight:  workout.Ptr(100.0),
		Repeats: workout.Ptr(5.0),
		Effort:  workout.Ptr(8.0),
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, _ = s.do(ctx, token, http.MethodPut, "/date", api.SetDateRequest{Date: workout.Ptr("2024-04-05")})
	require.Equal(t, http.StatusOK, status)

	status, body = s.do(ctx, token, http.MethodPost, "/events", nil)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decodeInto[api.EventsResponse](s, body).Events
	require.Len(t, created, 1)
	assert.Equal(t, workoutID, created[0].WorkoutID)
	assert.Equal(t, 500.0, created[0].Tonnage)

	var rows int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1 AND data->>'workoutId' = $2`,
		"integration-user", workoutID,
	).Scan(&rows))
	assert.Equal(t, 1, rows)

	// a fresh fetch reads the persisted rows back
	status, body = s.do(ctx, token, http.MethodPost, "/events/fetch", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	fetched := decodeInto[api.EventsResponse](s, body).Events
	require.Len(t, fetched, 1)
	assert.Equal(t, "legs", fetched[0].Title)

	status, body = s.do(ctx, token, http.MethodGet, "/results/previous?exerciseId=squat&date=2024-04-10", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	prev := decodeInto[api.PreviousResultsResponse](s, body)
	require.Len(t, prev.Sets, 1)
	assert.Equal(t, 100.0, *prev.Sets[0].Weight)

	status, body = s.do(ctx, token, http.MethodDelete, "/events/"+workoutID, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Empty(t, decodeInto[api.EventsResponse](s, body).Events)

	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1`, "integration-user",
	).Scan(&rows))
	assert.Equal(t, 0, rows)
}
