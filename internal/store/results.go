package store

import (
	"context"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/eduwise/eduwise/internal/quiz"
)

// ResultRepo stores submitted tests.
type ResultRepo struct {
	drv *entsql.Driver
}

type resultRow struct {
	ID        int64  `sql:"id"`
	UserID    string `sql:"user_id"`
	Payload   string `sql:"payload"`
	Correct   int64  `sql:"correct"`
	Wrong     int64  `sql:"wrong"`
	CreatedAt string `sql:"created_at"`
}

// Save validates rec and inserts it, returning the new id.
func (r *ResultRepo) Save(ctx context.Context, rec quiz.TestRecord) (int64, error) {
	enc, err := rec.Encode()
	if err != nil {
		return 0, err
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(resultsTable.Name).
		Columns("user_id", "payload", "correct", "wrong", "created_at").
		Values(enc.UserID, string(enc.Payload), enc.Correct, enc.Wrong, formatTime(enc.CreatedAt)).
		Query()
	return insert(ctx, r.drv, "save result", query, args)
}

// List returns user's results oldest first, undecoded. Callers decode
// each record themselves so one unreadable payload does not hide the rest.
func (r *ResultRepo) List(ctx context.Context, user string, opts QueryOpts) ([]quiz.EncodedRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "user_id", "payload", "correct", "wrong", "created_at").
		From(entsql.Table(resultsTable.Name)).
		Where(userFilter(user, opts)).
		OrderBy(entsql.Asc("id"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var rows []resultRow
	if err := selectRows(ctx, r.drv, sel, &rows); err != nil {
		return nil, wrap("list results", err)
	}
	out := make([]quiz.EncodedRecord, len(rows))
	for i, row := range rows {
		out[i] = quiz.EncodedRecord{
			ID:        row.ID,
			UserID:    row.UserID,
			Payload:   []byte(row.Payload),
			Correct:   int(row.Correct),
			Wrong:     int(row.Wrong),
			CreatedAt: parseTime(row.CreatedAt),
		}
	}
	return out, nil
}

// Delete removes result id if it belongs to user.
func (r *ResultRepo) Delete(ctx context.Context, user string, id int64) error {
	return deleteOwned(ctx, r.drv, resultsTable.Name, user, id)
}
