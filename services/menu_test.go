package services

import (
	"context"
	"errors"
	"testing"

	"flip-menu/db"
	"flip-menu/docstore"
	"flip-menu/events"
	"flip-menu/models"
)

func TestRestaurantCRUD(t *testing.T) {
	setup(t)
	ctx := context.Background()

	id := mustID(t, CreateRestaurant(ctx, SampleRestaurant))
	r, err := GetRestaurant(ctx, id).Unwrap()
	if err != nil {
		t.Fatalf("GetRestaurant: %v", err)
	}
	if r.NameEn != "Good Food Restaurant" || r.Settings.ItemsPerPage != 6 {
		t.Errorf("restaurant = %+v", r)
	}
	if r.CreatedAt.IsZero() || !r.CreatedAt.Equal(r.UpdatedAt) {
		t.Errorf("timestamps = %v / %v", r.CreatedAt, r.UpdatedAt)
	}

	if res := UpdateRestaurant(ctx, id, docstore.Doc{"phone": "02-000-0000"}); !res.OK() {
		t.Fatalf("UpdateRestaurant: %v", res.Err())
	}
	r2 := GetRestaurant(ctx, id).Value()
	if r2.Phone != "02-000-0000" || r2.Name != r.Name {
		t.Errorf("merge lost fields: %+v", r2)
	}
	if !r2.UpdatedAt.After(r.UpdatedAt) {
		t.Errorf("updatedAt not refreshed: %v -> %v", r.UpdatedAt, r2.UpdatedAt)
	}
}

func TestNotFoundIsFailure(t *testing.T) {
	setup(t)
	ctx := context.Background()
	if err := GetRestaurant(ctx, "missing").Err(); !errors.Is(err, ErrRestaurantNotFound) {
		t.Errorf("GetRestaurant err = %v", err)
	}
	if err := GetMenuByID(ctx, "missing").Err(); !errors.Is(err, ErrMenuNotFound) {
		t.Errorf("GetMenuByID err = %v", err)
	}
	if err := UpdateRestaurant(ctx, "missing", docstore.Doc{"name": "x"}).Err(); !errors.Is(err, ErrRestaurantNotFound) {
		t.Errorf("UpdateRestaurant err = %v", err)
	}
	if err := DeleteMenu(ctx, "missing").Err(); !errors.Is(err, ErrMenuNotFound) {
		t.Errorf("DeleteMenu err = %v", err)
	}
}

func TestGroupedViews(t *testing.T) {
	setup(t)
	ctx := context.Background()
	const r = "r1"

	drinks := addCategory(t, r, "drinks", 2, true)
	mains := addCategory(t, r, "mains", 1, true)
	retired := addCategory(t, r, "retired", 0, false)
	empty := addCategory(t, r, "empty", 3, true)
	addCategory(t, "other", "foreign", 1, true)

	addMenu(t, r, mains, "curry", 2, models.StatusAvailable)
	addMenu(t, r, mains, "rice", 1, models.StatusAvailable)
	addMenu(t, r, mains, "soup", 3, models.StatusUnavailable)
	addMenu(t, r, drinks, "tea", 1, models.StatusAvailable)
	gone := addMenu(t, r, drinks, "soda", 2, models.StatusAvailable)
	addMenu(t, r, retired, "old", 1, models.StatusAvailable)
	addMenu(t, r, "orphan-category", "lost", 1, models.StatusAvailable)
	addMenu(t, "other", mains, "foreign", 1, models.StatusAvailable)
	if res := DeleteMenu(ctx, gone); !res.OK() {
		t.Fatal(res.Err())
	}

	tests := []struct {
		name  string
		get   func(context.Context, string) Result[[]CategoryWithMenus]
		names [][]string
	}{
		{"customer", GetMenusWithCategories, [][]string{{"rice", "curry"}, {"tea"}, {}}},
		{"admin", GetAllMenusWithCategories, [][]string{{"rice", "curry", "soup"}, {"tea"}, {}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := tt.get(ctx, r).Unwrap()
			if err != nil {
				t.Fatal(err)
			}
			wantCats := []string{mains, drinks, empty}
			if len(groups) != len(wantCats) {
				t.Fatalf("got %d groups, want %d", len(groups), len(wantCats))
			}
			for i, g := range groups {
				if g.ID != wantCats[i] {
					t.Errorf("group %d = %s, want %s", i, g.Name, wantCats[i])
				}
				if g.Menus == nil {
					t.Errorf("group %s has nil menus, want empty list", g.Name)
				}
				if got := menuNames(g.Menus); !equalStrings(got, tt.names[i]) {
					t.Errorf("group %s = %v, want %v", g.Name, got, tt.names[i])
				}
				for _, m := range g.Menus {
					if m.Deleted() {
						t.Errorf("deleted item %s in %s view", m.NameEn, tt.name)
					}
				}
			}
		})
	}
}

func TestGroupedViewStopsAtFirstFailure(t *testing.T) {
	setup(t)
	store := &findCountingStore{Store: db.Docs}
	db.Docs = store
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if res := GetMenusWithCategories(ctx, "r1"); res.OK() {
		t.Fatal("want failure from cancelled context")
	}
	if n := store.finds; n != 1 {
		t.Errorf("store queried %d times, want 1", n)
	}
}

func TestDeleteMenuIsIdempotent(t *testing.T) {
	rec := setup(t)
	ctx := context.Background()
	cat := addCategory(t, "r1", "mains", 1, true)
	id := addMenu(t, "r1", cat, "rice", 1, models.StatusAvailable)

	for i := 0; i < 2; i++ {
		if res := DeleteMenu(ctx, id); !res.OK() {
			t.Fatalf("DeleteMenu #%d: %v", i+1, res.Err())
		}
		m, err := GetMenuByID(ctx, id).Unwrap()
		if err != nil {
			t.Fatalf("deleted item must stay fetchable: %v", err)
		}
		if m.DisplayStatus() != models.StatusDeleted || m.Lifecycle != models.LifecycleDeleted {
			t.Errorf("after delete #%d: status=%s lifecycle=%s", i+1, m.Status, m.Lifecycle)
		}
		if m.Status != models.StatusAvailable {
			t.Errorf("delete must not touch availability, got %s", m.Status)
		}
	}
	for _, get := range []func(context.Context, string) Result[[]CategoryWithMenus]{GetMenusWithCategories, GetAllMenusWithCategories} {
		if n := len(Flatten(get(ctx, "r1").Value())); n != 0 {
			t.Errorf("grouped view still has %d items", n)
		}
	}

	var deletes int
	for _, e := range rec.Events() {
		if e.RoutingKey() == "menu.item.deleted" && e.ID == id {
			deletes++
		}
	}
	if deletes != 2 {
		t.Errorf("published %d delete events, want 2", deletes)
	}
}

func TestUpdateMenuDeletedStatusBecomesLifecycle(t *testing.T) {
	setup(t)
	ctx := context.Background()
	id := addMenu(t, "r1", "c1", "rice", 1, models.StatusUnavailable)

	if res := UpdateMenu(ctx, id, docstore.Doc{"status": "deleted"}); !res.OK() {
		t.Fatal(res.Err())
	}
	snap, err := db.Docs.Get(ctx, ColMenus, id)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Data["status"] != "unavailable" || snap.Data["lifecycle"] != "deleted" {
		t.Errorf("stored status=%v lifecycle=%v", snap.Data["status"], snap.Data["lifecycle"])
	}
	if res := UpdateMenu(ctx, id, docstore.Doc{"status": "sold-out"}); res.OK() {
		t.Error("unknown status accepted")
	}
}

func TestLegacyDeletedDocumentsAreHiddenFromAdmin(t *testing.T) {
	setup(t)
	ctx := context.Background()
	cat := addCategory(t, "r1", "mains", 1, true)
	addMenu(t, "r1", cat, "rice", 1, models.StatusAvailable)
	_, err := db.Docs.Create(ctx, ColMenus, docstore.Doc{
		"restaurantId": "r1", "categoryId": cat, "nameEn": "legacy", "status": "deleted", "order": int64(2),
	})
	if err != nil {
		t.Fatal(err)
	}
	got := menuNames(GetAllMenusByRestaurant(ctx, "r1").Value())
	if !equalStrings(got, []string{"rice"}) {
		t.Errorf("admin listing = %v", got)
	}
}

func TestBackfillLifecycle(t *testing.T) {
	setup(t)
	ctx := context.Background()
	cat := addCategory(t, "r1", "mains", 1, true)
	addMenu(t, "r1", cat, "rice", 1, models.StatusAvailable)
	for _, d := range []docstore.Doc{
		{"restaurantId": "r1", "categoryId": cat, "nameEn": "old soup", "status": "available", "order": int64(2)},
		{"restaurantId": "r1", "categoryId": cat, "nameEn": "old gone", "status": "deleted", "order": int64(3)},
	} {
		if _, err := db.Docs.Create(ctx, ColMenus, d); err != nil {
			t.Fatal(err)
		}
	}

	n, err := BackfillLifecycle(ctx).Unwrap()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("backfilled %d documents, want 2", n)
	}
	want := []string{"rice", "old soup"}
	if got := menuNames(GetMenusByRestaurant(ctx, "r1").Value()); !equalStrings(got, want) {
		t.Errorf("GetMenusByRestaurant = %v, want %v", got, want)
	}
	if got := menuNames(GetMenusByCategory(ctx, "r1", cat).Value()); !equalStrings(got, want) {
		t.Errorf("GetMenusByCategory = %v, want %v", got, want)
	}
	if got := menuNames(SearchMenus(ctx, "r1", "old").Value()); !equalStrings(got, []string{"old soup"}) {
		t.Errorf("SearchMenus = %v", got)
	}

	snaps, err := db.Docs.Find(ctx, docstore.Collection(ColMenus).Where("lifecycle", "deleted"))
	if err != nil || len(snaps) != 1 {
		t.Fatalf("tombstones = %d, err %v", len(snaps), err)
	}
	if snaps[0].Data["status"] != "unavailable" {
		t.Errorf("legacy deleted status = %v", snaps[0].Data["status"])
	}

	if n := BackfillLifecycle(ctx).Value(); n != 0 {
		t.Errorf("second run changed %d documents", n)
	}
}

func TestUpdateMenuRejectsInvalidFields(t *testing.T) {
	setup(t)
	ctx := context.Background()
	id := addMenu(t, "r1", "c1", "rice", 1, models.StatusAvailable)

	tests := []struct {
		name   string
		fields docstore.Doc
		field  string
	}{
		{"unknown lifecycle", docstore.Doc{"lifecycle": "zombie"}, "lifecycle"},
		{"empty lifecycle", docstore.Doc{"lifecycle": ""}, "lifecycle"},
		{"negative price", docstore.Doc{"price": -50}, "price"},
		{"text price", docstore.Doc{"price": "cheap"}, "price"},
		{"null price", docstore.Doc{"price": nil}, "price"},
		{"unknown status", docstore.Doc{"status": "sold-out"}, "status"},
	}
	for _, tt := range tests {
		err := UpdateMenu(ctx, id, tt.fields).Err()
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != tt.field {
			t.Errorf("%s: err = %v, want validation error on %s", tt.name, err, tt.field)
		}
	}
	m := GetMenuByID(ctx, id).Value()
	if m.Lifecycle != models.LifecycleActive || m.Price != 10 || m.Status != models.StatusAvailable {
		t.Errorf("rejected updates were stored: %+v", m)
	}

	if res := UpdateMenu(ctx, id, docstore.Doc{"price": "12.50"}); !res.OK() {
		t.Fatal(res.Err())
	}
	if got := GetMenuByID(ctx, id).Value().Price; got != 12.5 {
		t.Errorf("price = %v, want 12.5", got)
	}
	if res := UpdateMenu(ctx, id, docstore.Doc{"lifecycle": "deleted"}); !res.OK() {
		t.Fatal(res.Err())
	}
	if !GetMenuByID(ctx, id).Value().Deleted() {
		t.Error("lifecycle deleted not stored")
	}
}

func TestGetMenusByCategory(t *testing.T) {
	setup(t)
	ctx := context.Background()
	a := addCategory(t, "r1", "a", 1, true)
	b := addCategory(t, "r1", "b", 2, true)
	addMenu(t, "r1", a, "a2", 2, models.StatusAvailable)
	addMenu(t, "r1", a, "a1", 1, models.StatusAvailable)
	addMenu(t, "r1", a, "a3", 3, models.StatusUnavailable)
	addMenu(t, "r1", b, "b1", 1, models.StatusAvailable)

	got := menuNames(GetMenusByCategory(ctx, "r1", a).Value())
	if !equalStrings(got, []string{"a1", "a2"}) {
		t.Errorf("GetMenusByCategory = %v", got)
	}
}

func TestDeleteCategory(t *testing.T) {
	setup(t)
	ctx := context.Background()
	keep := addCategory(t, "r1", "keep", 1, true)
	drop := addCategory(t, "r1", "drop", 2, true)
	item := addMenu(t, "r1", drop, "rice", 1, models.StatusAvailable)

	if res := DeleteCategory(ctx, drop); !res.OK() {
		t.Fatal(res.Err())
	}
	cats := GetCategoriesByRestaurant(ctx, "r1").Value()
	if len(cats) != 1 || cats[0].ID != keep {
		t.Errorf("categories = %+v", cats)
	}
	if res := GetMenuByID(ctx, item); !res.OK() {
		t.Errorf("linked item must remain fetchable: %v", res.Err())
	}
}

func TestGetCategoriesEmptyIsSuccess(t *testing.T) {
	setup(t)
	res := GetCategoriesByRestaurant(context.Background(), "nobody")
	if !res.OK() {
		t.Fatal(res.Err())
	}
	if len(res.Value()) != 0 {
		t.Errorf("got %d categories", len(res.Value()))
	}
}

func TestReorderMenus(t *testing.T) {
	rec := setup(t)
	ctx := context.Background()
	a := addMenu(t, "r1", "c1", "a", 1, models.StatusAvailable)
	b := addMenu(t, "r1", "c1", "b", 2, models.StatusAvailable)
	before := GetMenuByID(ctx, a).Value().UpdatedAt

	if res := ReorderMenus(ctx, []OrderUpdate{{ID: a, Order: 5}, {ID: b, Order: 3}}); !res.OK() {
		t.Fatal(res.Err())
	}
	ma, mb := GetMenuByID(ctx, a).Value(), GetMenuByID(ctx, b).Value()
	if ma.Order != 5 || mb.Order != 3 {
		t.Errorf("orders = %d, %d", ma.Order, mb.Order)
	}
	if !ma.UpdatedAt.After(before) {
		t.Error("reorder must refresh updatedAt")
	}

	res := ReorderMenus(ctx, []OrderUpdate{{ID: a, Order: 10}, {ID: "missing", Order: 11}})
	if res.OK() {
		t.Fatal("batch with a missing id succeeded")
	}
	if got := GetMenuByID(ctx, a).Value().Order; got != 5 {
		t.Errorf("partial application: order = %d, want 5", got)
	}

	var reorders int
	for _, e := range rec.Events() {
		if e.Action == events.ActionReordered {
			reorders++
		}
	}
	if reorders != 1 {
		t.Errorf("reorder events = %d, want 1", reorders)
	}
}

func TestReorderCategories(t *testing.T) {
	setup(t)
	ctx := context.Background()
	a := addCategory(t, "r1", "a", 1, true)
	b := addCategory(t, "r1", "b", 2, true)

	if res := ReorderCategories(ctx, []OrderUpdate{{ID: a, Order: 2}, {ID: b, Order: 1}}); !res.OK() {
		t.Fatal(res.Err())
	}
	cats := GetCategoriesByRestaurant(ctx, "r1").Value()
	if len(cats) != 2 || cats[0].ID != b || cats[1].ID != a {
		t.Errorf("order after reorder = %+v", cats)
	}
	if res := ReorderCategories(ctx, []OrderUpdate{{ID: a, Order: 9}, {ID: "missing", Order: 1}}); res.OK() {
		t.Fatal("batch with a missing id succeeded")
	}
	if cats := GetCategoriesByRestaurant(ctx, "r1").Value(); cats[0].ID != b {
		t.Error("failed batch changed the order")
	}
}

func TestSearchMenus(t *testing.T) {
	setup(t)
	ctx := context.Background()
	cat := addCategory(t, "r1", "c", 1, true)
	addMenu(t, "r1", cat, "Pad Thai", 1, models.StatusAvailable)
	addMenu(t, "r1", cat, "Pad See Ew", 2, models.StatusUnavailable)
	addMenu(t, "r1", cat, "Green Curry", 3, models.StatusAvailable)
	_ = mustID(t, CreateMenu(ctx, models.MenuItem{
		RestaurantID: "r1", CategoryID: cat, NameTh: "ข้าว", Status: models.StatusAvailable,
		Description: "served with PADDED rice", Order: 4,
	}))

	for _, q := range []string{"pad", "PAD", "Pad"} {
		got := menuNames(SearchMenus(ctx, "r1", q).Value())
		if !equalStrings(got, []string{"Pad Thai", ""}) {
			t.Errorf("SearchMenus(%q) = %v", q, got)
		}
	}
	if got := SearchMenus(ctx, "r1", "ข้าว").Value(); len(got) != 1 {
		t.Errorf("local-name search found %d", len(got))
	}
	if got := SearchMenus(ctx, "r1", "sushi").Value(); len(got) != 0 {
		t.Errorf("unexpected matches %v", menuNames(got))
	}
}

func TestGetMenuStats(t *testing.T) {
	setup(t)
	ctx := context.Background()
	for i, s := range []models.Status{"available", "available", "available", "unavailable", "unavailable"} {
		cat := "c1"
		if i%2 == 1 {
			cat = "c2"
		}
		addMenu(t, "r1", cat, "m", int64(i), s)
	}
	deleted := addMenu(t, "r1", "c1", "gone", 9, models.StatusAvailable)
	_ = DeleteMenu(ctx, deleted)

	st, err := GetMenuStats(ctx, "r1").Unwrap()
	if err != nil {
		t.Fatal(err)
	}
	if st.Total != 5 || st.Available != 3 || st.Unavailable != 2 {
		t.Errorf("stats = %+v", st)
	}
	var sum int
	for _, n := range st.ByCategory {
		sum += n
	}
	if sum != 5 {
		t.Errorf("byCategory sums to %d", sum)
	}
}

type findCountingStore struct {
	docstore.Store
	finds int
}

func (s *findCountingStore) Find(ctx context.Context, q docstore.Query) ([]docstore.Snapshot, error) {
	s.finds++
	return s.Store.Find(ctx, q)
}
