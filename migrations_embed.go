package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"

	"flip-menu/db"

	"github.com/jackc/pgx/v5"
)

// Postgres migrations ship inside the binary. SQLite applies its own
// schema on open; Firestore and Mongo need none.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	name TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// applyMigrations runs every embedded file not yet recorded in
// schema_migrations, each in its own transaction.
func applyMigrations(ctx context.Context, verbose bool) error {
	if db.Pool == nil {
		return fmt.Errorf("migrations need the postgres store")
	}
	if _, err := db.Pool.Exec(ctx, migrationsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		base := path.Base(name)
		var done bool
		if err := db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, base).Scan(&done); err != nil {
			return fmt.Errorf("check migration %s: %w", base, err)
		}
		if done {
			continue
		}
		sqlBytes, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", base, err)
		}
		err = pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(sqlBytes)); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, base)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", base, err)
		}
		if verbose {
			fmt.Println("Migration", base, "applied.")
		} else {
			log.Printf("migration %s applied", base)
		}
	}
	return nil
}
