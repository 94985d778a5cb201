// Package fsstore adapts Cloud Firestore, the hosted document database the
// menu was first built on, to docstore.Store.
package fsstore

import (
	"context"
	"fmt"
	"sort"

	"flip-menu/docstore"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Store struct {
	client *firestore.Client
}

// Open initialises a Firebase app for projectID and returns its Firestore
// client. credentialsFile may be empty to use application default
// credentials.
func Open(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Create(ctx context.Context, collection string, data docstore.Doc) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, map[string]interface{}(data))
	if err != nil {
		return "", fmt.Errorf("add to %s: %w", collection, err)
	}
	return ref.ID, nil
}

// Insert uses DocumentRef.Create, which fails with AlreadyExists when the
// document is there.
func (s *Store) Insert(ctx context.Context, collection, id string, data docstore.Doc) error {
	if _, err := s.client.Collection(collection).Doc(id).Create(ctx, map[string]interface{}(data)); err != nil {
		return mapErr(collection, id, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Snapshot, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return docstore.Snapshot{}, mapErr(collection, id, err)
	}
	return docstore.Snapshot{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Doc) error {
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, toUpdates(fields))
	if err != nil {
		return mapErr(collection, id, err)
	}
	return nil
}

func (s *Store) Find(ctx context.Context, q docstore.Query) ([]docstore.Snapshot, error) {
	query := s.client.Collection(q.Collection).Query
	for _, f := range q.Filters {
		query = query.Where(f.Field, "==", f.Value)
	}
	if q.OrderBy != "" {
		query = query.OrderBy(q.OrderBy, firestore.Asc)
	}
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Collection, err)
	}
	out := make([]docstore.Snapshot, 0, len(docs))
	for _, d := range docs {
		out = append(out, docstore.Snapshot{ID: d.Ref.ID, Data: d.Data()})
	}
	return out, nil
}

// UpdateAll runs the updates in one transaction. Firestore rejects the
// commit when any referenced document is missing.
func (s *Store) UpdateAll(ctx context.Context, collection string, updates []docstore.Update) error {
	col := s.client.Collection(collection)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, u := range updates {
			if err := tx.Update(col.Doc(u.ID), toUpdates(u.Fields)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return mapErr(collection, "batch", err)
	}
	return nil
}

// Ping lists at most one collection to prove the credentials work.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.Collections(ctx).Next()
	if err != nil && err != iterator.Done {
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// toUpdates turns a merge document into field updates. FieldPath keeps
// keys literal; sorting makes the write order deterministic.
func toUpdates(fields docstore.Doc) []firestore.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ups := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		ups = append(ups, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: fields[k]})
	}
	return ups
}

func mapErr(collection, id string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrNotFound)
	case codes.AlreadyExists:
		return fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrExists)
	}
	return fmt.Errorf("%s/%s: %w", collection, id, err)
}
