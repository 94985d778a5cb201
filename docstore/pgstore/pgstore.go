// Package pgstore keeps documents in PostgreSQL: one table per collection,
// each row an id plus a JSONB body.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"flip-menu/docstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

// New wraps an open pool. Close closes the pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func table(collection string) (string, error) {
	if !docstore.ValidName(collection) {
		return "", fmt.Errorf("invalid collection name %q", collection)
	}
	return pgx.Identifier{collection}.Sanitize(), nil
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
	if _, err := s.pool.Exec(ctx, `INSERT INTO `+t+` (id, data) VALUES ($1, $2::jsonb)`, id, string(body)); err != nil {
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
	tag, err := s.pool.Exec(ctx, `INSERT INTO `+t+` (id, data) VALUES ($1, $2::jsonb) ON CONFLICT (id) DO NOTHING`, id, string(body))
	if err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrExists)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Snapshot, error) {
	t, err := table(collection)
	if err != nil {
		return docstore.Snapshot{}, err
	}
	var body []byte
	err = s.pool.QueryRow(ctx, `SELECT data FROM `+t+` WHERE id = $1`, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
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

// Update merges with the jsonb || operator, which replaces top-level keys.
func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Doc) error {
	t, err := table(collection)
	if err != nil {
		return err
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal %s update: %w", collection, err)
	}
	tag, err := s.pool.Exec(ctx, `UPDATE `+t+` SET data = data || $2::jsonb WHERE id = $1`, id, string(body))
	if err != nil {
		return fmt.Errorf("update %s: %w", collection, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	return nil
}

func (s *Store) Find(ctx context.Context, q docstore.Query) ([]docstore.Snapshot, error) {
	sql, args, err := buildSelect(q)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Collection, err)
	}
	defer rows.Close()

	var out []docstore.Snapshot
	for rows.Next() {
		var id string
		var body []byte
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

// UpdateAll runs every merge in one transaction; a missing id rolls back.
func (s *Store) UpdateAll(ctx context.Context, collection string, updates []docstore.Update) error {
	t, err := table(collection)
	if err != nil {
		return err
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, u := range updates {
			body, err := json.Marshal(u.Fields)
			if err != nil {
				return fmt.Errorf("marshal %s update: %w", collection, err)
			}
			tag, err := tx.Exec(ctx, `UPDATE `+t+` SET data = data || $2::jsonb WHERE id = $1`, u.ID, string(body))
			if err != nil {
				return fmt.Errorf("update %s/%s: %w", collection, u.ID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%s/%s: %w", collection, u.ID, docstore.ErrNotFound)
			}
		}
		return nil
	})
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// buildSelect renders q as SQL. Field names are validated and inlined so the
// planner can match the expression indexes created by the migrations.
func buildSelect(q docstore.Query) (string, []any, error) {
	t, err := table(q.Collection)
	if err != nil {
		return "", nil, err
	}
	var (
		sb    strings.Builder
		conds []string
		args  []any
	)
	sb.WriteString(`SELECT id, data FROM ` + t)
	for _, f := range q.Filters {
		if !docstore.ValidName(f.Field) {
			return "", nil, fmt.Errorf("invalid field name %q", f.Field)
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return "", nil, fmt.Errorf("marshal filter %s: %w", f.Field, err)
		}
		args = append(args, string(v))
		conds = append(conds, fmt.Sprintf(`data->'%s' = $%d::jsonb`, f.Field, len(args)))
	}
	if q.OrderBy != "" {
		if !docstore.ValidName(q.OrderBy) {
			return "", nil, fmt.Errorf("invalid order field %q", q.OrderBy)
		}
		conds = append(conds, fmt.Sprintf(`data ? '%s'`, q.OrderBy))
	}
	if len(conds) > 0 {
		sb.WriteString(` WHERE `)
		sb.WriteString(strings.Join(conds, ` AND `))
	}
	if q.OrderBy != "" {
		sb.WriteString(fmt.Sprintf(` ORDER BY data->'%s', id`, q.OrderBy))
	} else {
		sb.WriteString(` ORDER BY id`)
	}
	return sb.String(), args, nil
}

func decode(body []byte) (docstore.Doc, error) {
	var d docstore.Doc
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return d, nil
}
