package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/2beens/workoutcal/internal/calendar"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// GetWorkoutcalContextTool returns the MCP tool handler for get_workoutcal_context.
func (h *Handler) GetWorkoutcalContextTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

// EventsTimeRangeInput is the input for get_events_for_time_range.
type EventsTimeRangeInput struct {
	FromDate string `json:"from_date" jsonschema:"Start date (YYYY-MM-DD), inclusive"`
	ToDate   string `json:"to_date" jsonschema:"End date (YYYY-MM-DD), inclusive"`
}

// GetEventsForTimeRangeTool returns the MCP tool handler for get_events_for_time_range.
func (h *Handler) GetEventsForTimeRangeTool() func(context.Context, *mcp.CallToolRequest, EventsTimeRangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in EventsTimeRangeInput) (*mcp.CallToolResult, any, error) {
		from, err := calendar.ParseDay(in.FromDate)
		if err != nil {
			return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
		}
		to, err := calendar.ParseDay(in.ToDate)
		if err != nil {
			return errorResult("Invalid to_date: use YYYY-MM-DD"), nil, nil
		}
		if to.Before(from) {
			return errorResult("Invalid range: to_date is before from_date"), nil, nil
		}

		list, err := h.service.EventsBetween(ctx, from, to)
		if err != nil {
			return errorResult("Error listing events: " + err.Error()), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

// PreviousResultsInput is the input for get_previous_results.
type PreviousResultsInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise id (e.g. squat)"`
	Before     string `json:"before,omitempty" jsonschema:"Only look at days strictly before this date (YYYY-MM-DD); defaults to the chosen date"`
}

// GetPreviousResultsTool returns the MCP tool handler for get_previous_results.
func (h *Handler) GetPreviousResultsTool() func(context.Context, *mcp.CallToolRequest, PreviousResultsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in PreviousResultsInput) (*mcp.CallToolResult, any, error) {
		if in.ExerciseID == "" {
			return errorResult("Missing exercise_id"), nil, nil
		}
		var pivot *time.Time
		if in.Before != "" {
			d, err := calendar.ParseDay(in.Before)
			if err != nil {
				return errorResult("Invalid before: use YYYY-MM-DD"), nil, nil
			}
			pivot = &d
		}

		res, err := h.service.PreviousResults(ctx, in.ExerciseID, pivot)
		if err != nil {
			return errorResult("Error fetching previous results: " + err.Error()), nil, nil
		}
		return jsonResult(res), nil, nil
	}
}

// BodyParamsHistoryInput is the input for get_body_params_history.
type BodyParamsHistoryInput struct {
	Label string `json:"label" jsonschema:"Body param label (e.g. weight, waist)"`
}

// GetBodyParamsHistoryTool returns the MCP tool handler for get_body_params_history.
func (h *Handler) GetBodyParamsHistoryTool() func(context.Context, *mcp.CallToolRequest, BodyParamsHistoryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in BodyParamsHistoryInput) (*mcp.CallToolResult, any, error) {
		if in.Label == "" {
			return errorResult("Missing label"), nil, nil
		}
		records, err := h.service.BodyParamsHistory(ctx, in.Label)
		if err != nil {
			return errorResult("Error fetching body params: " + err.Error()), nil, nil
		}
		return jsonResult(records), nil, nil
	}
}
