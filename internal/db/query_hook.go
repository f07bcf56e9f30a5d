package db

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-pg/pg/v10"

	"github.com/daniilsolovey/blog-portal/internal/metrics"
)

// QueryHook implements pg.QueryHook interface for logging SQL queries
// and recording their latency.
type QueryHook struct {
	logger  *slog.Logger
	verbose bool
}

// NewQueryHook creates a new QueryHook instance. When verbose is false
// only failed queries are logged.
func NewQueryHook(logger *slog.Logger, verbose bool) *QueryHook {
	return &QueryHook{
		logger:  logger,
		verbose: verbose,
	}
}

// BeforeQuery is called before executing a query
func (h *QueryHook) BeforeQuery(ctx context.Context, event *pg.QueryEvent) (context.Context, error) {
	return ctx, nil
}

// AfterQuery is called after executing a query
func (h *QueryHook) AfterQuery(ctx context.Context, event *pg.QueryEvent) error {
	duration := time.Since(event.StartTime)

	query, err := event.FormattedQuery()
	if err != nil {
		h.logger.Error("failed to format query", "error", err)
		return nil
	}

	metrics.DBQueryDuration.WithLabelValues(statement(string(query))).Observe(duration.Seconds())

	switch {
	case event.Err != nil && event.Err != pg.ErrNoRows:
		h.logger.WarnContext(ctx, "SQL query failed",
			"query", string(query),
			"duration", duration,
			"error", event.Err,
		)
	case h.verbose:
		h.logger.DebugContext(ctx, "SQL query executed",
			"query", string(query),
			"duration", duration,
		)
	}

	return nil
}

// statement returns the lower-cased leading SQL keyword of the query.
func statement(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}

	switch kw := strings.ToLower(fields[0]); kw {
	case "select", "insert", "update", "delete", "with", "begin", "commit", "rollback", "savepoint", "release":
		return kw
	default:
		return "other"
	}
}
