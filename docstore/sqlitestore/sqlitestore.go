// Package sqlitestore keeps documents in an embedded SQLite file using the
// JSON1 functions. It is the zero-setup backend for local development.
package sqlitestore

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"flip-menu/docstore"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

type Store struct {
	sqlDB *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func table(collection string) (string, error) {
	if !docstore.ValidName(collection) {
		return "", fmt.Errorf("invalid collection name %q", collection)
	}
	return `"` + collection + `"`, nil
}

func (s *Store) Create(ctx context.Context, collection string, data docstore.Doc) (string, error) {
	t, err := table(collection)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal %s document: %w", collection, err)
	}
	id := uuid.NewString()
	if _, err := s.sqlDB.ExecContext(ctx, `INSERT INTO `+t+` (id, data) VALUES (?, json(?))`, id, string(body)); err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return id, nil
}

func (s *Store) Insert(ctx context.Context, collection, id string, data docstore.Doc) error {
	t, err := table(collection)
	if err != nil {
		return err
	}
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s document: %w", collection, err)
	}
	res, err := s.sqlDB.ExecContext(ctx, `INSERT INTO `+t+` (id, data) VALUES (?, json(?)) ON CONFLICT (id) DO NOTHING`, id, string(body))
	if err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	} else if n == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrExists)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Snapshot, error) {
	t, err := table(collection)
	if err != nil {
		return docstore.Snapshot{}, err
	}
	var body string
	err = s.sqlDB.QueryRowContext(ctx, `SELECT data FROM `+t+` WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.Snapshot{}, fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	if err != nil {
		return docstore.Snapshot{}, fmt.Errorf("select from %s: %w", collection, err)
	}
	d, err := decode(body)
	if err != nil {
		return docstore.Snapshot{}, err
	}
	return docstore.Snapshot{ID: id, Data: d}, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Doc) error {
	return s.UpdateAll(ctx, collection, []docstore.Update{{ID: id, Fields: fields}})
}

func (s *Store) Find(ctx context.Context, q docstore.Query) ([]docstore.Snapshot, error) {
	query, args, err := buildSelect(q)
	if err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Collection, err)
	}
	defer rows.Close()

	var out []docstore.Snapshot
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		d, err := decode(body)
		if err != nil {
			return nil, err
		}
		out = append(out, docstore.Snapshot{ID: id, Data: d})
	}
	return out, rows.Err()
}

func (s *Store) UpdateAll(ctx context.Context, collection string, updates []docstore.Update) (err error) {
	t, err := table(collection)
	if err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for _, u := range updates {
		stmt, args, err := buildUpdate(t, u)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, stmt, args...)
		if err != nil {
			return fmt.Errorf("update %s/%s: %w", collection, u.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%s/%s: %w", collection, u.ID, docstore.ErrNotFound)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// buildUpdate replaces top-level keys with json_set. An empty update still
// touches the row so a missing id is reported.
func buildUpdate(t string, u docstore.Update) (string, []any, error) {
	keys := make([]string, 0, len(u.Fields))
	for k := range u.Fields {
		if !docstore.ValidName(k) {
			return "", nil, fmt.Errorf("invalid field name %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return `UPDATE ` + t + ` SET data = data WHERE id = ?`, []any{u.ID}, nil
	}
	var (
		parts []string
		args  []any
	)
	for _, k := range keys {
		v, err := json.Marshal(u.Fields[k])
		if err != nil {
			return "", nil, fmt.Errorf("marshal field %s: %w", k, err)
		}
		parts = append(parts, fmt.Sprintf(`'$.%s', json(?)`, k))
		args = append(args, string(v))
	}
	args = append(args, u.ID)
	return `UPDATE ` + t + ` SET data = json_set(data, ` + strings.Join(parts, ", ") + `) WHERE id = ?`, args, nil
}

func buildSelect(q docstore.Query) (string, []any, error) {
	t, err := table(q.Collection)
	if err != nil {
		return "", nil, err
	}
	var (
		conds []string
		args  []any
	)
	for _, f := range q.Filters {
		if !docstore.ValidName(f.Field) {
			return "", nil, fmt.Errorf("invalid field name %q", f.Field)
		}
		conds = append(conds, fmt.Sprintf(`json_extract(data, '$.%s') = ?`, f.Field))
		args = append(args, sqlValue(f.Value))
	}
	if q.OrderBy != "" {
		if !docstore.ValidName(q.OrderBy) {
			return "", nil, fmt.Errorf("invalid order field %q", q.OrderBy)
		}
		conds = append(conds, fmt.Sprintf(`json_type(data, '$.%s') IS NOT NULL`, q.OrderBy))
	}
	stmt := `SELECT id, data FROM ` + t
	if len(conds) > 0 {
		stmt += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	if q.OrderBy != "" {
		stmt += fmt.Sprintf(` ORDER BY json_extract(data, '$.%s'), id`, q.OrderBy)
	} else {
		stmt += ` ORDER BY id`
	}
	return stmt, args, nil
}

// sqlValue converts a filter value to what json_extract yields for the
// stored JSON: booleans become 0/1 and times their JSON string form.
func sqlValue(v any) any {
	switch x := v.(type) {
	case bool:
		if x {
			return int64(1)
		}
		return int64(0)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	}
	return v
}

func decode(body string) (docstore.Doc, error) {
	var d docstore.Doc
	if err := json.Unmarshal([]byte(body), &d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return d, nil
}
