package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"flip-menu/db"
	"flip-menu/docstore"
	"flip-menu/events"
	"flip-menu/models"
)

// setup points the services at a fresh memory store with a clock that
// advances one millisecond per read.
func setup(t *testing.T) *events.Recorder {
	t.Helper()
	prevDocs, prevEvents, prevNow := db.Docs, Events, now
	db.Docs = docstore.NewMemory()
	rec := &events.Recorder{}
	Events = rec
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var tick atomic.Int64
	now = func() time.Time { return base.Add(time.Duration(tick.Add(1)) * time.Millisecond) }
	t.Cleanup(func() {
		db.Docs, Events, now = prevDocs, prevEvents, prevNow
	})
	return rec
}

func mustID(t *testing.T, r Result[ID]) string {
	t.Helper()
	id, err := r.Unwrap()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return string(id)
}

func addCategory(t *testing.T, restaurantID, name string, order int64, active bool) string {
	t.Helper()
	return mustID(t, CreateCategory(context.Background(), models.Category{
		RestaurantID: restaurantID, Name: name, NameEn: name, Order: order, IsActive: active,
	}))
}

func addMenu(t *testing.T, restaurantID, categoryID, nameEn string, order int64, status models.Status) string {
	t.Helper()
	return mustID(t, CreateMenu(context.Background(), models.MenuItem{
		RestaurantID: restaurantID, CategoryID: categoryID,
		NameTh: nameEn, NameEn: nameEn, Price: 10, Status: status, Order: order,
	}))
}

func menuNames(items []models.MenuItem) []string {
	out := make([]string, len(items))
	for i, m := range items {
		out[i] = m.NameEn
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// countingStore counts every call that reaches the store.
type countingStore struct {
	docstore.Store
	calls atomic.Int64
}

func (s *countingStore) Create(ctx context.Context, c string, d docstore.Doc) (string, error) {
	s.calls.Add(1)
	return s.Store.Create(ctx, c, d)
}

func (s *countingStore) Update(ctx context.Context, c, id string, d docstore.Doc) error {
	s.calls.Add(1)
	return s.Store.Update(ctx, c, id, d)
}
