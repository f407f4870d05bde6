//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/2beens/workoutcal/internal/api"
	"github.com/2beens/workoutcal/internal/gateway/redisprofile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestBodyParamsAndFavorites() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	token := s.issueToken(ctx, "profile-user")

	status, body := s.do(ctx, token, http.MethodPut, "/body-params/active", api.SetActiveBodyParamRequest{ID: 1})
	require.Equal(t, http.StatusOK, status, string(body))
	active := decodeInto[api.ActiveBodyParamResponse](s, body)
	require.NotNil(t, active.Definition)

	status, body = s.do(ctx, token, http.MethodPost, "/body-params", api.PushBodyParamRequest{Value: 81.5})
	require.Equal(t, http.StatusCreated, status, string(body))
	records := decodeInto[api.BodyParamsResponse](s, body).Records
	require.Len(t, records, 1)
	require.Len(t, records[0].Params, 1)
	assert.Equal(t, 81.5, records[0].Params[0].Value)
	assert.Equal(t, active.Definition.Label, records[0].Params[0].Label)

	status, body = s.do(ctx, token, http.MethodPost, "/favorites/deadlift", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	fav := decodeInto[api.ToggleFavoriteResponse](s, body)
	assert.True(t, fav.Favorite)
	assert.Equal(t, []string{"deadlift"}, fav.Favorites)

	// profile columns live in redis
	stored, err := s.redisClient.HGetAll(ctx, redisprofile.ProfileKey("profile-user")).Result()
	require.NoError(t, err)
	assert.Contains(t, stored["favorite_exercises"], "deadlift")
	assert.Contains(t, stored["body_params"], "81.5")
}
