package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// BlobRecord is a stored JSON document owned by a user: a generated plan
// or a generated question batch.
type BlobRecord struct {
	ID        int64
	UserID    string
	Payload   json.RawMessage
	CreatedAt time.Time
}

// Decode unmarshals the payload into v.
func (r BlobRecord) Decode(v any) error {
	if err := json.Unmarshal(r.Payload, v); err != nil {
		return fmt.Errorf("decode record %d: %w", r.ID, err)
	}
	return nil
}

type blobRow struct {
	ID        int64  `sql:"id"`
	UserID    string `sql:"user_id"`
	Payload   string `sql:"payload"`
	CreatedAt string `sql:"created_at"`
}

func (r blobRow) record() BlobRecord {
	return BlobRecord{
		ID:        r.ID,
		UserID:    r.UserID,
		Payload:   json.RawMessage(r.Payload),
		CreatedAt: parseTime(r.CreatedAt),
	}
}

// BlobRepo stores JSON documents in one table keyed by user.
type BlobRepo struct {
	drv   *entsql.Driver
	table string
}

// Save marshals v and inserts it for user. It returns the new record id.
func (r *BlobRepo) Save(ctx context.Context, user string, v any, at time.Time) (int64, error) {
	if strings.TrimSpace(user) == "" {
		return 0, &PersistenceError{Op: "save " + r.table, Err: fmt.Errorf("empty user id")}
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, &PersistenceError{Op: "save " + r.table, Err: fmt.Errorf("encode payload: %w", err)}
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(r.table).
		Columns("user_id", "payload", "created_at").
		Values(user, string(payload), formatTime(at)).
		Query()
	return insert(ctx, r.drv, "save "+r.table, query, args)
}

// Latest returns the newest record for user, or ErrNotFound.
func (r *BlobRepo) Latest(ctx context.Context, user string) (BlobRecord, error) {
	recs, err := r.List(ctx, user, QueryOpts{Limit: 1})
	if err != nil {
		return BlobRecord{}, err
	}
	if len(recs) == 0 {
		return BlobRecord{}, ErrNotFound
	}
	return recs[0], nil
}

// Get returns record id if it belongs to user.
func (r *BlobRepo) Get(ctx context.Context, user string, id int64) (BlobRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "user_id", "payload", "created_at").
		From(entsql.Table(r.table)).
		Where(entsql.And(entsql.EQ("user_id", user), entsql.EQ("id", id)))

	var rows []blobRow
	if err := selectRows(ctx, r.drv, sel, &rows); err != nil {
		return BlobRecord{}, wrap("get "+r.table, err)
	}
	if len(rows) == 0 {
		return BlobRecord{}, ErrNotFound
	}
	return rows[0].record(), nil
}

// List returns user's records, newest first.
func (r *BlobRepo) List(ctx context.Context, user string, opts QueryOpts) ([]BlobRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "user_id", "payload", "created_at").
		From(entsql.Table(r.table)).
		Where(userFilter(user, opts)).
		OrderBy(entsql.Desc("id"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var rows []blobRow
	if err := selectRows(ctx, r.drv, sel, &rows); err != nil {
		return nil, wrap("list "+r.table, err)
	}
	out := make([]BlobRecord, len(rows))
	for i, row := range rows {
		out[i] = row.record()
	}
	return out, nil
}

// Delete removes record id if it belongs to user.
func (r *BlobRepo) Delete(ctx context.Context, user string, id int64) error {
	return deleteOwned(ctx, r.drv, r.table, user, id)
}

func userFilter(user string, opts QueryOpts) *entsql.Predicate {
	preds := []*entsql.Predicate{entsql.EQ("user_id", user)}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", formatTime(opts.From)))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", formatTime(opts.To)))
	}
	return entsql.And(preds...)
}

func insert(ctx context.Context, drv *entsql.Driver, op, query string, args []any) (int64, error) {
	var res sql.Result
	if err := drv.Exec(ctx, query, args, &res); err != nil {
		return 0, wrap(op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrap(op, err)
	}
	return id, nil
}

func selectRows(ctx context.Context, drv *entsql.Driver, sel *entsql.Selector, dst any) error {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	return entsql.ScanSlice(rows, dst)
}

func deleteOwned(ctx context.Context, drv *entsql.Driver, table, user string, id int64) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(table).
		Where(entsql.And(entsql.EQ("user_id", user), entsql.EQ("id", id))).
		Query()

	var res sql.Result
	if err := drv.Exec(ctx, query, args, &res); err != nil {
		return wrap("delete "+table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap("delete "+table, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
