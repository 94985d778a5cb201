package db

import (
	"context"
	"fmt"
	"log"

	"flip-menu/config"
	"flip-menu/docstore"
	"flip-menu/docstore/fsstore"
	"flip-menu/docstore/mongostore"
	"flip-menu/docstore/pgstore"
	"flip-menu/docstore/sqlitestore"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Docs is the document store every service reads and writes.
var Docs docstore.Store

// Pool is set only for the postgres driver; migrations run against it.
var Pool *pgxpool.Pool

func Init(ctx context.Context, cfg *config.Config) error {
	var err error
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		connStr := fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s",
			cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Database,
		)
		Pool, err = pgxpool.New(ctx, connStr)
		if err != nil {
			return err
		}
		Docs = pgstore.New(Pool)
	case config.DriverSQLite:
		var ss *sqlitestore.Store
		if ss, err = sqlitestore.Open(cfg.Store.SQLitePath); err == nil {
			Docs = ss
		}
	case config.DriverFirestore:
		var fs *fsstore.Store
		if fs, err = fsstore.Open(ctx, cfg.Store.FirebaseProjectID, cfg.Store.FirebaseCredentials); err == nil {
			Docs = fs
		}
	case config.DriverMongo:
		var ms *mongostore.Store
		ms, err = mongostore.Open(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
		if err == nil {
			if ierr := ms.EnsureIndexes(ctx); ierr != nil {
				log.Printf("mongo indexes: %v", ierr)
			}
			Docs = ms
		}
	case config.DriverMemory:
		Docs = docstore.NewMemory()
	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return err
	}
	return Docs.Ping(ctx)
}

func Close() {
	if Docs != nil {
		if err := Docs.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}
	Pool = nil
}
