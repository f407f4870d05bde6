//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/workoutcal/internal/middleware"

	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) issueToken(ctx context.Context, userID string) string {
	token, err := s.authService.Issue(ctx, userID, time.Now())
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), token)
	return token
}

// do sends body as JSON, when given, and returns the status code and the
// response body.
func (s *IntegrationTestSuite) do(ctx context.Context, token, method, path string, body any) (int, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s%s", serverEndpoint, path), reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func decodeInto[T any](s *IntegrationTestSuite, b []byte) T {
	var v T
	require.NoError(s.T(), json.Unmarshal(b, &v), string(b))
	return v
}
