package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const requestsTable = "request_events"

// requestLogRepo implements RequestLogRepo.
type requestLogRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *requestLogRepo) AppendRequest(ctx context.Context, data RequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(requestsTable).
		Columns("sequence", "timestamp", "operation", "request_id", "status_code",
			"latency_ms", "success", "error_kind", "error_message").
		Values(seqNum, time.Now().UnixMilli(), data.Operation, data.RequestID, data.StatusCode,
			data.LatencyMs, data.Success, data.ErrorKind, data.ErrorMessage).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save request event: %w", err)
	}
	return nil
}

func (r *requestLogRepo) Recent(ctx context.Context, limit int) ([]RequestEvent, error) {
	b := builder()
	sel := b.Select("sequence", "timestamp", "operation", "request_id", "status_code",
		"latency_ms", "success", "error_kind", "error_message").
		From(b.Table(requestsTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query request events: %w", err)
	}
	defer rows.Close()

	var events []RequestEvent
	for rows.Next() {
		var (
			ev RequestEvent
			ts int64
		)
		if err := rows.Scan(&ev.Sequence, &ts, &ev.Operation, &ev.RequestID, &ev.StatusCode,
			&ev.LatencyMs, &ev.Success, &ev.ErrorKind, &ev.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan request event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(ts)
		events = append(events, ev)
	}
	return events, rows.Err()
}
