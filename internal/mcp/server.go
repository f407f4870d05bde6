package mcp

import (
	"net/http"

	"github.com/2beens/workoutcal/internal/gateway"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

// NewServer builds an MCP server answering from the session of userID:
// events in a time range, previous results of an exercise, body params
// history, and, when schemaRepo is set, the postgres schema.
func NewServer(sessions sessionRegistry, schemaRepo SchemaRepo, userID string) *mcp.Server {
	h := NewHandler(NewContextService(sessions, schemaRepo, userID))
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "workoutcal-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_events_for_time_range",
		Description: "Returns the scheduled workouts (events) whose day falls within the given range, both ends inclusive. Args: from_date, to_date (YYYY-MM-DD). Each event has its exercises with sets (weight, repeats, effort) and tonnage.",
	}, h.GetEventsForTimeRangeTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_previous_results",
		Description: "Returns the sets of the most recent earlier workout that logged the given exercise. Arg: exercise_id; optional: before (YYYY-MM-DD, defaults to the chosen date). Use to compare today's sets with last time.",
	}, h.GetPreviousResultsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_body_params_history",
		Description: "Returns the body measurement records holding the given param, most recent first. Arg: label (e.g. weight, waist, hips).",
	}, h.GetBodyParamsHistoryTool())

	if schemaRepo != nil {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "get_workoutcal_context",
			Description: "Returns the DB schema of the workouts and profiles tables: columns, types, nullable, default. Use when you need the actual storage layout.",
		}, h.GetWorkoutcalContextTool())
	}

	return s
}

// NewHTTPHandler serves MCP over streamable HTTP. Every request gets a
// server bound to the authenticated user of that request.
func NewHTTPHandler(sessions sessionRegistry, schemaRepo SchemaRepo, identity gateway.Identity) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		userID, err := identity.CurrentUserID(r.Context())
		if err != nil {
			log.Debugf("mcp: %s", err)
			return nil
		}
		return NewServer(sessions, schemaRepo, userID)
	}, nil)
}
