package store

import (
	"context"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// LLMEventRepo is the LLM request log.
type LLMEventRepo struct {
	drv *entsql.Driver
	now func() time.Time
}

var _ EventRepo = (*LLMEventRepo)(nil)

type llmEventRow struct {
	ID           int64  `sql:"id"`
	CreatedAt    string `sql:"created_at"`
	RequestID    string `sql:"request_id"`
	Provider     string `sql:"provider"`
	Model        string `sql:"model"`
	Purpose      string `sql:"purpose"`
	InputTokens  int64  `sql:"input_tokens"`
	OutputTokens int64  `sql:"output_tokens"`
	LatencyMs    int64  `sql:"latency_ms"`
	Success      bool   `sql:"success"`
	ErrorMessage string `sql:"error_message"`
	RequestBody  string `sql:"request_body"`
	ResponseBody string `sql:"response_body"`
}

func (r llmEventRow) record() LLMRequestEventRecord {
	return LLMRequestEventRecord{
		ID:        r.ID,
		Timestamp: parseTime(r.CreatedAt),
		LLMRequestEventData: LLMRequestEventData{
			RequestID:    r.RequestID,
			Provider:     r.Provider,
			Model:        r.Model,
			Purpose:      r.Purpose,
			InputTokens:  int(r.InputTokens),
			OutputTokens: int(r.OutputTokens),
			LatencyMs:    r.LatencyMs,
			Success:      r.Success,
			ErrorMessage: r.ErrorMessage,
			RequestBody:  r.RequestBody,
			ResponseBody: r.ResponseBody,
		},
	}
}

var llmEventColumns = []string{
	"id", "created_at", "request_id", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func (r *LLMEventRepo) AppendLLMRequest(ctx context.Context, d LLMRequestEventData) error {
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(llmEventsTable.Name).
		Columns(llmEventColumns[1:]...).
		Values(formatTime(now()), d.RequestID, d.Provider, d.Model, d.Purpose,
			d.InputTokens, d.OutputTokens, d.LatencyMs, d.Success,
			d.ErrorMessage, d.RequestBody, d.ResponseBody).
		Query()
	_, err := insert(ctx, r.drv, "append llm event", query, args)
	return err
}

// QueryLLMEvents returns events newest first.
func (r *LLMEventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(llmEventColumns...).
		From(entsql.Table(llmEventsTable.Name)).
		OrderBy(entsql.Desc("id"))
	var preds []*entsql.Predicate
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", formatTime(opts.From)))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", formatTime(opts.To)))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var rows []llmEventRow
	if err := selectRows(ctx, r.drv, sel, &rows); err != nil {
		return nil, wrap("query llm events", err)
	}
	out := make([]LLMRequestEventRecord, len(rows))
	for i, row := range rows {
		out[i] = row.record()
	}
	return out, nil
}

// GetLLMEvent returns one event, or ErrNotFound.
func (r *LLMEventRepo) GetLLMEvent(ctx context.Context, id int64) (LLMRequestEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(llmEventColumns...).
		From(entsql.Table(llmEventsTable.Name)).
		Where(entsql.EQ("id", id))

	var rows []llmEventRow
	if err := selectRows(ctx, r.drv, sel, &rows); err != nil {
		return LLMRequestEventRecord{}, wrap("get llm event", err)
	}
	if len(rows) == 0 {
		return LLMRequestEventRecord{}, ErrNotFound
	}
	return rows[0].record(), nil
}

type usageRow struct {
	Key          string  `sql:"key"`
	Calls        int64   `sql:"calls"`
	InputTokens  int64   `sql:"input_tokens"`
	OutputTokens int64   `sql:"output_tokens"`
	AvgLatency   float64 `sql:"avg_latency"`
}

// LLMUsageByPurpose aggregates calls per purpose, most calls first.
func (r *LLMEventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	rows, err := r.usage(ctx, "purpose")
	if err != nil {
		return nil, err
	}
	out := make([]LLMUsage, len(rows))
	for i, row := range rows {
		out[i] = row.usage()
		out[i].Purpose = row.Key
	}
	return out, nil
}

// LLMUsageByModel aggregates calls per model, most calls first.
func (r *LLMEventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	rows, err := r.usage(ctx, "model")
	if err != nil {
		return nil, err
	}
	out := make([]LLMUsage, len(rows))
	for i, row := range rows {
		out[i] = row.usage()
		out[i].Model = row.Key
	}
	return out, nil
}

func (row usageRow) usage() LLMUsage {
	return LLMUsage{
		Calls:        int(row.Calls),
		InputTokens:  int(row.InputTokens),
		OutputTokens: int(row.OutputTokens),
		AvgLatencyMs: int64(row.AvgLatency),
	}
}

func (r *LLMEventRepo) usage(ctx context.Context, column string) ([]usageRow, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(
			entsql.As(column, "key"),
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
			entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
			entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
		).
		From(entsql.Table(llmEventsTable.Name)).
		GroupBy(column).
		OrderBy(entsql.Desc("calls"), entsql.Asc("key"))

	var rows []usageRow
	if err := selectRows(ctx, r.drv, sel, &rows); err != nil {
		return nil, wrap("llm usage by "+column, err)
	}
	return rows, nil
}
