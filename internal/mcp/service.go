package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/workoutcal/internal/bodyparams"
	"github.com/2beens/workoutcal/internal/calendar"
	"github.com/2beens/workoutcal/internal/session"
	"github.com/2beens/workoutcal/internal/workout"
)

var ErrNoSchema = errors.New("schema not available for this storage backend")

type sessionRegistry interface {
	Get(ctx context.Context, userID string) (*session.Session, error)
}

// contextService is what the tool handlers need. Used by Handler for testability.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	EventsBetween(ctx context.Context, from, to time.Time) ([]workout.Event, error)
	PreviousResults(ctx context.Context, exerciseID string, pivot *time.Time) (PreviousResults, error)
	BodyParamsHistory(ctx context.Context, label string) ([]bodyparams.Record, error)
}

// PreviousResults is the get_previous_results payload.
type PreviousResults struct {
	ExerciseID string        `json:"exerciseId"`
	Before     string        `json:"before"`
	Sets       []workout.Set `json:"sets"`
}

// ContextService answers tool calls from the session of one user.
type ContextService struct {
	sessions sessionRegistry
	schema   SchemaRepo
	userID   string
}

// NewContextService builds a service for userID. schemaRepo may be nil when
// the rows do not live in postgres.
func NewContextService(sessions sessionRegistry, schemaRepo SchemaRepo, userID string) *ContextService {
	return &ContextService{
		sessions: sessions,
		schema:   schemaRepo,
		userID:   userID,
	}
}

func (s *ContextService) session(ctx context.Context) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("session for %s: %w", s.userID, err)
	}
	return sess, nil
}

// GetSchema returns the postgres schema of the workouts and profiles tables.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	if s.schema == nil {
		return "", ErrNoSchema
	}
	cols, err := s.schema.GetWorkoutcalColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Workoutcal DB Schema\n\nNo workoutcal tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}
	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Workoutcal DB Schema\n\n")
	b.WriteString("Events are JSONB documents in workouts.data keyed by data->>'workoutId'. ")
	b.WriteString("Favorites and body params are JSONB columns of profiles.\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

// EventsBetween returns the events of the inclusive day range, ordered by date.
func (s *ContextService) EventsBetween(ctx context.Context, from, to time.Time) ([]workout.Event, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return sess.Events.EventsBetween(from, to), nil
}

// PreviousResults returns the last logged sets of exerciseID before pivot,
// or before the chosen date when pivot is nil.
func (s *ContextService) PreviousResults(ctx context.Context, exerciseID string, pivot *time.Time) (PreviousResults, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return PreviousResults{}, err
	}
	before := sess.Date.Date()
	if pivot != nil {
		before = *pivot
	}
	return PreviousResults{
		ExerciseID: exerciseID,
		Before:     before.Format(calendar.DayLayout),
		Sets:       sess.Events.PreviousResultsFor(exerciseID, before),
	}, nil
}

// BodyParamsHistory returns the records holding label, most recent first.
func (s *ContextService) BodyParamsHistory(ctx context.Context, label string) ([]bodyparams.Record, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := sess.BodyParams.Definitions().ByLabel(label); !ok {
		return nil, fmt.Errorf("unknown body param %q", label)
	}
	return sess.BodyParams.FilteredByLabel(label), nil
}
