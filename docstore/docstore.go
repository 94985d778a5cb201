// Package docstore is the document-store boundary of the menu service.
//
// Records are flat, string-keyed documents grouped into collections. The
// store does not know about restaurants or menus: it offers create (with a
// generated or a chosen id), get, merge-update, equality queries with a single ascending sort, and one
// atomic multi-document update used by the reorder operations.
package docstore

import (
	"context"
	"errors"
	"regexp"
)

// ErrNotFound is returned when a document id does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// ErrExists is returned by Insert when the id is already taken.
var ErrExists = errors.New("document already exists")

// Doc is a schema-less document. Values are plain Go values: string, bool,
// int64, float64, time.Time, nil, map[string]any and []any.
type Doc map[string]any

// Snapshot is a document read back from the store together with its id.
type Snapshot struct {
	ID   string
	Data Doc
}

// Filter is an equality condition on a top-level field.
type Filter struct {
	Field string
	Value any
}

// Query selects documents of one collection. All filters must match.
// When OrderBy is set, results are sorted ascending by that field (ties by
// id) and documents without the field are left out.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    string
}

// Where returns a copy of q with one more equality filter.
func (q Query) Where(field string, value any) Query {
	filters := make([]Filter, 0, len(q.Filters)+1)
	filters = append(filters, q.Filters...)
	q.Filters = append(filters, Filter{Field: field, Value: value})
	return q
}

// Ordered returns a copy of q sorted by field.
func (q Query) Ordered(field string) Query {
	q.OrderBy = field
	return q
}

// Collection starts a query over the named collection.
func Collection(name string) Query {
	return Query{Collection: name}
}

// Update is one element of an atomic batch: merge Fields into document ID.
type Update struct {
	ID     string
	Fields Doc
}

// Store is implemented by every backend (memory, postgres, sqlite,
// firestore, mongo).
type Store interface {
	// Create inserts data under a store-generated id and returns the id.
	Create(ctx context.Context, collection string, data Doc) (string, error)
	// Insert stores data under a caller-chosen id. Only one of several
	// concurrent inserts of the same id succeeds; the rest get ErrExists.
	Insert(ctx context.Context, collection, id string, data Doc) error
	// Get returns ErrNotFound when the id does not exist.
	Get(ctx context.Context, collection, id string) (Snapshot, error)
	// Update merges top-level fields into an existing document.
	// It returns ErrNotFound when the id does not exist.
	Update(ctx context.Context, collection, id string, fields Doc) error
	Find(ctx context.Context, q Query) ([]Snapshot, error)
	// UpdateAll applies every update or none of them.
	UpdateAll(ctx context.Context, collection string, updates []Update) error
	Ping(ctx context.Context) error
	Close() error
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidName reports whether s is usable as a collection or field name by
// the SQL backends, which inline names into statements.
func ValidName(s string) bool {
	return identRe.MatchString(s)
}

// Clone returns a deep copy of d so callers cannot alias stored state.
func Clone(d Doc) Doc {
	if d == nil {
		return nil
	}
	out := make(Doc, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case Doc:
		return Clone(x)
	case map[string]any:
		return map[string]any(Clone(Doc(x)))
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = cloneValue(x[i])
		}
		return out
	default:
		return v
	}
}
