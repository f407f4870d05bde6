package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/2beens/workoutcal/internal/bodyparams"
	"github.com/2beens/workoutcal/internal/workout"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// mockContextService implements contextService for tests.
type mockContextService struct {
	schema     string
	schemaErr  error
	events     []workout.Event
	eventsErr  error
	gotFrom    time.Time
	gotTo      time.Time
	previous   PreviousResults
	prevErr    error
	gotPivot   *time.Time
	records    []bodyparams.Record
	recordsErr error
}

func (m *mockContextService) GetSchema(ctx context.Context) (string, error) {
	return m.schema, m.schemaErr
}

func (m *mockContextService) EventsBetween(ctx context.Context, from, to time.Time) ([]workout.Event, error) {
	m.gotFrom, m.gotTo = from, to
	return m.events, m.eventsErr
}

func (m *mockContextService) PreviousResults(ctx context.Context, exerciseID string, pivot *time.Time) (PreviousResults, error) {
	m.gotPivot = pivot
	return m.previous, m.prevErr
}

func (m *mockContextService) BodyParamsHistory(ctx context.Context, label string) ([]bodyparams.Record, error) {
	return m.records, m.recordsErr
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected 1 content, got %d", len(res.Content))
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want *mcp.TextContent", res.Content[0])
	}
	return tc.Text
}

func TestHandler_GetWorkoutcalContextTool(t *testing.T) {
	t.Run("returns_schema", func(t *testing.T) {
		want := "## workouts\n| col | type |\n"
		h := NewHandler(&mockContextService{schema: want})
		res, _, err := h.GetWorkoutcalContextTool()(context.Background(), &mcp.CallToolRequest{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.IsError {
			t.Fatalf("unexpected IsError")
		}
		if got := resultText(t, res); got != want {
			t.Fatalf("content text = %q, want %q", got, want)
		}
	})

	t.Run("returns_error_when_schema_fails", func(t *testing.T) {
		h := NewHandler(&mockContextService{schemaErr: errors.New("db gone")})
		res, _, err := h.GetWorkoutcalContextTool()(context.Background(), &mcp.CallToolRequest{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsError {
			t.Fatalf("expected IsError")
		}
		if got := resultText(t, res); got != "Error fetching schema: db gone" {
			t.Fatalf("content text = %q", got)
		}
	})
}

func TestHandler_GetEventsForTimeRangeTool(t *testing.T) {
	cases := []struct {
		name    string
		in      EventsTimeRangeInput
		wantErr string
	}{
		{name: "invalid_from_date", in: EventsTimeRangeInput{FromDate: "bad", ToDate: "2024-04-15"}, wantErr: "Invalid from_date: use YYYY-MM-DD"},
		{name: "invalid_to_date", in: EventsTimeRangeInput{FromDate: "2024-04-01", ToDate: "bad"}, wantErr: "Invalid to_date: use YYYY-MM-DD"},
		{name: "reversed_range", in: EventsTimeRangeInput{FromDate: "2024-04-15", ToDate: "2024-04-01"}, wantErr: "Invalid range: to_date is before from_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(&mockContextService{})
			res, _, err := h.GetEventsForTimeRangeTool()(context.Background(), &mcp.CallToolRequest{}, tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.IsError {
				t.Fatalf("expected IsError")
			}
			if got := resultText(t, res); got != tc.wantErr {
				t.Fatalf("content text = %q", got)
			}
		})
	}

	t.Run("returns_events", func(t *testing.T) {
		svc := &mockContextService{events: []workout.Event{
			{WorkoutID: "w1", Title: "Leg Day", Date: time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC)},
		}}
		h := NewHandler(svc)
		res, _, err := h.GetEventsForTimeRangeTool()(context.Background(), &mcp.CallToolRequest{}, EventsTimeRangeInput{
			FromDate: "2024-04-01",
			ToDate:   "2024-04-15",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.IsError {
			t.Fatalf("unexpected IsError: %s", resultText(t, res))
		}
		if got := resultText(t, res); !strings.Contains(got, `"workoutId": "w1"`) {
			t.Fatalf("expected JSON body, got %q", got)
		}
		if svc.gotFrom.Day() != 1 || svc.gotTo.Day() != 15 {
			t.Fatalf("range = %s..%s", svc.gotFrom, svc.gotTo)
		}
	})

	t.Run("returns_error_when_list_fails", func(t *testing.T) {
		h := NewHandler(&mockContextService{eventsErr: errors.New("connection refused")})
		res, _, err := h.GetEventsForTimeRangeTool()(context.Background(), &mcp.CallToolRequest{}, EventsTimeRangeInput{
			FromDate: "2024-04-01",
			ToDate:   "2024-04-15",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsError {
			t.Fatalf("expected IsError")
		}
		if got := resultText(t, res); got != "Error listing events: connection refused" {
			t.Fatalf("content text = %q", got)
		}
	})
}

func TestHandler_GetPreviousResultsTool(t *testing.T) {
	t.Run("missing_exercise_id", func(t *testing.T) {
		h := NewHandler(&mockContextService{})
		res, _, _ := h.GetPreviousResultsTool()(context.Background(), &mcp.CallToolRequest{}, PreviousResultsInput{})
		if !res.IsError || resultText(t, res) != "Missing exercise_id" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("invalid_before", func(t *testing.T) {
		h := NewHandler(&mockContextService{})
		res, _, _ := h.GetPreviousResultsTool()(context.Background(), &mcp.CallToolRequest{}, PreviousResultsInput{
			ExerciseID: "squat",
			Before:     "yesterday",
		})
		if !res.IsError || resultText(t, res) != "Invalid before: use YYYY-MM-DD" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("defaults_to_chosen_date", func(t *testing.T) {
		svc := &mockContextService{previous: PreviousResults{ExerciseID: "squat", Before: "2024-04-05", Sets: []workout.Set{}}}
		h := NewHandler(svc)
		res, _, err := h.GetPreviousResultsTool()(context.Background(), &mcp.CallToolRequest{}, PreviousResultsInput{ExerciseID: "squat"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.IsError {
			t.Fatalf("unexpected IsError: %s", resultText(t, res))
		}
		if svc.gotPivot != nil {
			t.Fatalf("pivot = %v, want nil", svc.gotPivot)
		}
		if got := resultText(t, res); !strings.Contains(got, `"before": "2024-04-05"`) {
			t.Fatalf("content text = %q", got)
		}
	})

	t.Run("passes_before", func(t *testing.T) {
		svc := &mockContextService{}
		h := NewHandler(svc)
		_, _, _ = h.GetPreviousResultsTool()(context.Background(), &mcp.CallToolRequest{}, PreviousResultsInput{
			ExerciseID: "squat",
			Before:     "2024-04-02",
		})
		if svc.gotPivot == nil || svc.gotPivot.Day() != 2 {
			t.Fatalf("pivot = %v", svc.gotPivot)
		}
	})

	t.Run("returns_error_when_service_fails", func(t *testing.T) {
		h := NewHandler(&mockContextService{prevErr: errors.New("no session")})
		res, _, _ := h.GetPreviousResultsTool()(context.Background(), &mcp.CallToolRequest{}, PreviousResultsInput{ExerciseID: "squat"})
		if !res.IsError || resultText(t, res) != "Error fetching previous results: no session" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestHandler_GetBodyParamsHistoryTool(t *testing.T) {
	t.Run("missing_label", func(t *testing.T) {
		h := NewHandler(&mockContextService{})
		res, _, _ := h.GetBodyParamsHistoryTool()(context.Background(), &mcp.CallToolRequest{}, BodyParamsHistoryInput{})
		if !res.IsError || resultText(t, res) != "Missing label" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("returns_records", func(t *testing.T) {
		svc := &mockContextService{records: []bodyparams.Record{
			{ID: "r1", Params: []bodyparams.Param{{Label: "weight", Value: 80}}},
		}}
		h := NewHandler(svc)
		res, _, err := h.GetBodyParamsHistoryTool()(context.Background(), &mcp.CallToolRequest{}, BodyParamsHistoryInput{Label: "weight"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.IsError {
			t.Fatalf("unexpected IsError: %s", resultText(t, res))
		}
		if got := resultText(t, res); !strings.Contains(got, `"value": 80`) {
			t.Fatalf("content text = %q", got)
		}
	})

	t.Run("returns_error_when_service_fails", func(t *testing.T) {
		h := NewHandler(&mockContextService{recordsErr: errors.New(`unknown body param "bmi"`)})
		res, _, _ := h.GetBodyParamsHistoryTool()(context.Background(), &mcp.CallToolRequest{}, BodyParamsHistoryInput{Label: "bmi"})
		if !res.IsError || resultText(t, res) != `Error fetching body params: unknown body param "bmi"` {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}
