// Package mongostore keeps documents in MongoDB collections keyed by string
// _id values.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"flip-menu/docstore"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to uri and pings the server before returning.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

// EnsureIndexes creates the compound indexes the menu queries rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]bson.D{
		"categories": {
			{{Key: "restaurantId", Value: 1}, {Key: "isActive", Value: 1}, {Key: "order", Value: 1}},
		},
		"menus": {
			{{Key: "restaurantId", Value: 1}, {Key: "order", Value: 1}},
			{{Key: "restaurantId", Value: 1}, {Key: "lifecycle", Value: 1}, {Key: "status", Value: 1}, {Key: "order", Value: 1}},
			{{Key: "restaurantId", Value: 1}, {Key: "categoryId", Value: 1}, {Key: "lifecycle", Value: 1}, {Key: "status", Value: 1}, {Key: "order", Value: 1}},
		},
	}
	for col, keys := range specs {
		models := make([]mongo.IndexModel, 0, len(keys))
		for _, k := range keys {
			models = append(models, mongo.IndexModel{Keys: k})
		}
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", col, err)
		}
	}
	return nil
}

func (s *Store) Create(ctx context.Context, collection string, data docstore.Doc) (string, error) {
	id := uuid.NewString()
	doc := bson.M{"_id": id}
	for k, v := range data {
		doc[k] = v
	}
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return id, nil
}

func (s *Store) Insert(ctx context.Context, collection, id string, data docstore.Doc) error {
	doc := bson.M{"_id": id}
	for k, v := range data {
		doc[k] = v
	}
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrExists)
		}
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Snapshot, error) {
	var m bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return docstore.Snapshot{}, fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	if err != nil {
		return docstore.Snapshot{}, fmt.Errorf("find %s/%s: %w", collection, id, err)
	}
	return toSnapshot(m), nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Doc) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	return nil
}

func (s *Store) Find(ctx context.Context, q docstore.Query) ([]docstore.Snapshot, error) {
	filter, opts := buildFind(q)
	cur, err := s.db.Collection(q.Collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", q.Collection, err)
	}
	var rows []bson.M
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("read %s: %w", q.Collection, err)
	}
	out := make([]docstore.Snapshot, 0, len(rows))
	for _, m := range rows {
		out = append(out, toSnapshot(m))
	}
	return out, nil
}

// UpdateAll needs a replica set: transactions are not available on a
// standalone mongod.
func (s *Store) UpdateAll(ctx context.Context, collection string, updates []docstore.Update) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	col := s.db.Collection(collection)
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, u := range updates {
			res, err := col.UpdateOne(sc, bson.M{"_id": u.ID}, bson.M{"$set": bson.M(u.Fields)})
			if err != nil {
				return nil, fmt.Errorf("update %s/%s: %w", collection, u.ID, err)
			}
			if res.MatchedCount == 0 {
				return nil, fmt.Errorf("%s/%s: %w", collection, u.ID, docstore.ErrNotFound)
			}
		}
		return nil, nil
	})
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

func buildFind(q docstore.Query) (bson.D, *options.FindOptions) {
	filter := bson.D{}
	for _, f := range q.Filters {
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
	}
	opts := options.Find()
	if q.OrderBy != "" {
		filter = append(filter, bson.E{Key: q.OrderBy, Value: bson.M{"$exists": true}})
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: 1}, {Key: "_id", Value: 1}})
	} else {
		opts.SetSort(bson.D{{Key: "_id", Value: 1}})
	}
	return filter, opts
}

func toSnapshot(m bson.M) docstore.Snapshot {
	id, _ := m["_id"].(string)
	d := make(docstore.Doc, len(m))
	for k, v := range m {
		if k == "_id" {
			continue
		}
		d[k] = normalize(v)
	}
	return docstore.Snapshot{ID: id, Data: d}
}

// normalize converts BSON decoding types to the plain values docstore uses.
func normalize(v any) any {
	switch x := v.(type) {
	case primitive.DateTime:
		return x.Time().UTC()
	case int32:
		return int64(x)
	case bson.M:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalize(e)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	}
	return v
}
