package gateway

import (
	"context"
	"time"

	"github.com/2beens/workoutcal/internal/telemetry/metrics"
	"github.com/2beens/workoutcal/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Instrumented wraps a row store and a profile store with tracing spans
// and call metrics. The two may be different backends.
type Instrumented struct {
	rows           RowStore
	profile        ProfileStore
	metricsManager *metrics.Manager
}

var (
	_ RowStore     = (*Instrumented)(nil)
	_ ProfileStore = (*Instrumented)(nil)
)

func NewInstrumented(rows RowStore, profile ProfileStore, metricsManager *metrics.Manager) *Instrumented {
	return &Instrumented{
		rows:           rows,
		profile:        profile,
		metricsManager: metricsManager,
	}
}

func (i *Instrumented) observe(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gateway."+op, trace.WithAttributes(attrs...))
	start := time.Now()
	return ctx, func(err error) {
		status := "ok"
		if err != nil {
			status = "error"
		}
		if i.metricsManager != nil {
			i.metricsManager.CounterGatewayCalls.WithLabelValues(op, status).Inc()
			i.metricsManager.HistogramGatewayCallDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		}
		tracing.EndSpanWithErrCheck(span, err)
	}
}

func (i *Instrumented) FetchRows(ctx context.Context, table, userID string, dst any, loading *LoadingFlag) (err error) {
	ctx, done := i.observe(ctx, "fetch_rows", attribute.String("table", table))
	defer func() { done(err) }()
	return i.rows.FetchRows(ctx, table, userID, dst, loading)
}

func (i *Instrumented) InsertRow(ctx context.Context, table, userID string, row any, loading *LoadingFlag) (err error) {
	ctx, done := i.observe(ctx, "insert_row", attribute.String("table", table))
	defer func() { done(err) }()
	return i.rows.InsertRow(ctx, table, userID, row, loading)
}

func (i *Instrumented) UpdateRow(ctx context.Context, table, userID, keyColumn, keyValue string, row any, loading *LoadingFlag) (err error) {
	ctx, done := i.observe(ctx, "update_row",
		attribute.String("table", table),
		attribute.String("key", keyValue),
	)
	defer func() { done(err) }()
	return i.rows.UpdateRow(ctx, table, userID, keyColumn, keyValue, row, loading)
}

func (i *Instrumented) UpdateAllRows(ctx context.Context, table, userID, keyColumn string, rows any, loading *LoadingFlag) (err error) {
	ctx, done := i.observe(ctx, "update_all_rows", attribute.String("table", table))
	defer func() { done(err) }()
	return i.rows.UpdateAllRows(ctx, table, userID, keyColumn, rows, loading)
}

func (i *Instrumented) DeleteRow(ctx context.Context, table, userID, idColumn, id string, loading *LoadingFlag) (err error) {
	ctx, done := i.observe(ctx, "delete_row",
		attribute.String("table", table),
		attribute.String("id", id),
	)
	defer func() { done(err) }()
	return i.rows.DeleteRow(ctx, table, userID, idColumn, id, loading)
}

func (i *Instrumented) FetchColumn(ctx context.Context, userID, column string, dst any, loading *LoadingFlag) (err error) {
	ctx, done := i.observe(ctx, "fetch_column", attribute.String("column", column))
	defer func() { done(err) }()
	return i.profile.FetchColumn(ctx, userID, column, dst, loading)
}

func (i *Instrumented) PersistColumn(ctx context.Context, userID, column string, value any, loading *LoadingFlag) (err error) {
	ctx, done := i.observe(ctx, "persist_column", attribute.String("column", column))
	defer func() { done(err) }()
	return i.profile.PersistColumn(ctx, userID, column, value, loading)
}
