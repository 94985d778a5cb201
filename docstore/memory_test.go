package docstore

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemory_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id, err := m.Create(ctx, "menus", Doc{"nameTh": "ผัดไทย", "order": int64(2)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned empty id")
	}

	if err := m.Update(ctx, "menus", id, Doc{"order": int64(5)}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	snap, err := m.Get(ctx, "menus", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if snap.Data["nameTh"] != "ผัดไทย" {
		t.Errorf("nameTh = %v, want untouched by merge", snap.Data["nameTh"])
	}
	if snap.Data["order"] != int64(5) {
		t.Errorf("order = %v, want 5", snap.Data["order"])
	}

	if _, err := m.Get(ctx, "menus", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing: err = %v, want ErrNotFound", err)
	}
	if err := m.Update(ctx, "menus", "missing", Doc{"x": 1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing: err = %v, want ErrNotFound", err)
	}
}

func TestMemory_InsertChosenID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Insert(ctx, "login_throttle", "web:203.0.113.7", Doc{"failCount": int64(1)}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	err := m.Insert(ctx, "login_throttle", "web:203.0.113.7", Doc{"failCount": int64(9)})
	if !errors.Is(err, ErrExists) {
		t.Fatalf("second Insert: err = %v, want ErrExists", err)
	}
	snap, err := m.Get(ctx, "login_throttle", "web:203.0.113.7")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Data["failCount"] != int64(1) {
		t.Errorf("failCount = %v, first insert must win", snap.Data["failCount"])
	}
}

func TestMemory_ReturnedDocsAreCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	settings := map[string]any{"theme": "classic"}
	id, _ := m.Create(ctx, "restaurants", Doc{"settings": settings})
	settings["theme"] = "dark"

	snap, _ := m.Get(ctx, "restaurants", id)
	got := snap.Data["settings"].(map[string]any)["theme"]
	if got != "classic" {
		t.Errorf("stored nested map aliased caller map: theme = %v", got)
	}
}

func TestMemory_FindFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	mk := func(r string, active bool, order int64) string {
		id, err := m.Create(ctx, "categories", Doc{"restaurantId": r, "isActive": active, "order": order})
		if err != nil {
			t.Fatal(err)
		}
		return id
	}
	c3 := mk("r1", true, 3)
	c1 := mk("r1", true, 1)
	mk("r1", false, 2)
	mk("r2", true, 0)
	_, _ = m.Create(ctx, "categories", Doc{"restaurantId": "r1", "isActive": true})

	got, err := m.Find(ctx, Collection("categories").Where("restaurantId", "r1").Where("isActive", true).Ordered("order"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Find returned %d docs, want 2 (inactive, other restaurant and unordered docs excluded)", len(got))
	}
	if got[0].ID != c1 || got[1].ID != c3 {
		t.Errorf("order = [%s %s], want [%s %s]", got[0].ID, got[1].ID, c1, c3)
	}

	none, err := m.Find(ctx, Collection("categories").Where("restaurantId", "nobody"))
	if err != nil || len(none) != 0 {
		t.Errorf("Find no match = %v, %v; want empty, nil", none, err)
	}
}

func TestMemory_UpdateAllIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a, _ := m.Create(ctx, "menus", Doc{"order": int64(1)})
	b, _ := m.Create(ctx, "menus", Doc{"order": int64(2)})

	err := m.UpdateAll(ctx, "menus", []Update{
		{ID: a, Fields: Doc{"order": int64(5)}},
		{ID: "ghost", Fields: Doc{"order": int64(9)}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateAll with missing id: err = %v, want ErrNotFound", err)
	}
	snap, _ := m.Get(ctx, "menus", a)
	if snap.Data["order"] != int64(1) {
		t.Errorf("partial batch applied: order = %v, want 1", snap.Data["order"])
	}

	if err := m.UpdateAll(ctx, "menus", []Update{
		{ID: a, Fields: Doc{"order": int64(5)}},
		{ID: b, Fields: Doc{"order": int64(3)}},
	}); err != nil {
		t.Fatalf("UpdateAll: %v", err)
	}
	sa, _ := m.Get(ctx, "menus", a)
	sb, _ := m.Get(ctx, "menus", b)
	if sa.Data["order"] != int64(5) || sb.Data["order"] != int64(3) {
		t.Errorf("orders = %v, %v; want 5, 3", sa.Data["order"], sb.Data["order"])
	}
}

func TestMemory_Closed(t *testing.T) {
	m := NewMemory()
	_ = m.Close()
	if err := m.Ping(context.Background()); err == nil {
		t.Error("Ping on closed store should fail")
	}
	if _, err := m.Create(context.Background(), "test", Doc{}); err == nil {
		t.Error("Create on closed store should fail")
	}
}

func TestEqualAndCompare(t *testing.T) {
	now := time.Now()
	tests := []struct {
		a, b any
		eq   bool
		cmp  int
	}{
		{int64(3), 3.0, true, 0},
		{int32(2), int64(3), false, -1},
		{"a", "b", false, -1},
		{true, true, true, 0},
		{false, true, false, -1},
		{nil, int64(0), false, -1},
		{"1", int64(1), false, 1},
		{now, now.Add(time.Second), false, -1},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.eq {
			t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.eq)
		}
		if got := Compare(tt.a, tt.b); got != tt.cmp {
			t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.cmp)
		}
	}
}

func TestValidName(t *testing.T) {
	for _, ok := range []string{"menus", "restaurantId", "_x1"} {
		if !ValidName(ok) {
			t.Errorf("ValidName(%q) = false", ok)
		}
	}
	for _, bad := range []string{"", "1abc", "a-b", "a;drop", "settings.theme"} {
		if ValidName(bad) {
			t.Errorf("ValidName(%q) = true", bad)
		}
	}
}
