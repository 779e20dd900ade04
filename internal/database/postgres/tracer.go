package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

type queryStartKey struct{}

type queryStart struct {
	sql string
	at  time.Time
}

// slowQueryTracer logs statements that take at least threshold.
type slowQueryTracer struct {
	logger    *logrus.Logger
	threshold time.Duration
	now       func() time.Time
}

func newSlowQueryTracer(logger *logrus.Logger, threshold time.Duration) *slowQueryTracer {
	return &slowQueryTracer{logger: logger, threshold: threshold, now: time.Now}
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, at: t.now()})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	took := t.now().Sub(start.at)
	if took < t.threshold {
		return
	}

	entry := t.logger.WithFields(logrus.Fields{
		"took": took.String(),
		"sql":  compactSQL(start.sql),
		"rows": data.CommandTag.RowsAffected(),
	})
	if data.Err != nil {
		entry = entry.WithError(data.Err)
	}
	entry.Warn("slow query")
}

// compactSQL folds whitespace so multi-line statements log on one line.
func compactSQL(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
