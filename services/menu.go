package services

import (
	"context"
	"fmt"
	"math"

	"flip-menu/db"
	"flip-menu/docstore"
	"flip-menu/events"
	"flip-menu/models"

	"github.com/spf13/cast"
)

func CreateMenu(ctx context.Context, m models.MenuItem) Result[ID] {
	return run("create menu", func() (ID, error) {
		d := m.Doc()
		t := now()
		d["createdAt"] = t
		d["updatedAt"] = t
		id, err := db.Docs.Create(ctx, ColMenus, d)
		if err != nil {
			return "", err
		}
		publish(ctx, events.Event{Kind: events.KindItem, Action: events.ActionCreated, ID: id, RestaurantID: m.RestaurantID})
		return ID(id), nil
	})
}

// UpdateMenu merges fields and refreshes updatedAt. A status of "deleted"
// is written as the lifecycle tombstone, never as availability. Status,
// lifecycle and price are checked before the write.
func UpdateMenu(ctx context.Context, id string, fields docstore.Doc) Result[Empty] {
	return run("update menu", func() (Empty, error) {
		d := docstore.Clone(fields)
		if d == nil {
			d = docstore.Doc{}
		}
		delete(d, "id")
		action := events.ActionUpdated
		if s, ok := d["status"]; ok {
			switch st := models.Status(cast.ToString(s)); {
			case st == models.StatusDeleted:
				delete(d, "status")
				d["lifecycle"] = string(models.LifecycleDeleted)
				action = events.ActionDeleted
			case st.Valid():
				d["status"] = string(st)
			default:
				return Empty{}, &ValidationError{Field: "status", Message: fmt.Sprintf("invalid status %q", st)}
			}
		}
		if l, ok := d["lifecycle"]; ok {
			lc := models.Lifecycle(cast.ToString(l))
			if !lc.Valid() {
				return Empty{}, &ValidationError{Field: "lifecycle", Message: fmt.Sprintf("invalid lifecycle %q", lc)}
			}
			d["lifecycle"] = string(lc)
			if lc == models.LifecycleDeleted {
				action = events.ActionDeleted
			}
		}
		if p, ok := d["price"]; ok {
			price, err := cast.ToFloat64E(p)
			if err != nil || p == nil {
				return Empty{}, &ValidationError{Field: "price", Message: fmt.Sprintf("not a number: %v", p)}
			}
			if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
				return Empty{}, &ValidationError{Field: "price", Message: "must be a non-negative number"}
			}
			d["price"] = price
		}
		d["updatedAt"] = now()
		if err := db.Docs.Update(ctx, ColMenus, id, d); err != nil {
			return Empty{}, notFound(err, ErrMenuNotFound)
		}
		publish(ctx, events.Event{Kind: events.KindItem, Action: action, ID: id})
		return Empty{}, nil
	})
}

// GetMenuByID returns the item whatever its lifecycle.
func GetMenuByID(ctx context.Context, id string) Result[models.MenuItem] {
	return run("get menu", func() (models.MenuItem, error) {
		snap, err := db.Docs.Get(ctx, ColMenus, id)
		if err != nil {
			return models.MenuItem{}, notFound(err, ErrMenuNotFound)
		}
		return models.MenuFromSnapshot(snap), nil
	})
}

// DeleteMenu tombstones the item. Calling it again is harmless.
func DeleteMenu(ctx context.Context, id string) Result[Empty] {
	return run("delete menu", func() (Empty, error) {
		err := db.Docs.Update(ctx, ColMenus, id, docstore.Doc{
			"lifecycle": string(models.LifecycleDeleted),
			"updatedAt": now(),
		})
		if err != nil {
			return Empty{}, notFound(err, ErrMenuNotFound)
		}
		publish(ctx, events.Event{Kind: events.KindItem, Action: events.ActionDeleted, ID: id})
		return Empty{}, nil
	})
}

// GetMenusByRestaurant is the customer listing: available, not deleted,
// filtered by the store.
func GetMenusByRestaurant(ctx context.Context, restaurantID string) Result[[]models.MenuItem] {
	return run("get menus", func() ([]models.MenuItem, error) {
		return availableMenus(ctx, restaurantID)
	})
}

func availableMenus(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	q := docstore.Collection(ColMenus).
		Where("restaurantId", restaurantID).
		Where("lifecycle", string(models.LifecycleActive)).
		Where("status", string(models.StatusAvailable)).
		Ordered("order")
	return findMenus(ctx, q, nil)
}

// GetAllMenusByRestaurant is the admin listing. The store filters only by
// restaurant; deleted items are dropped here.
func GetAllMenusByRestaurant(ctx context.Context, restaurantID string) Result[[]models.MenuItem] {
	return run("get all menus", func() ([]models.MenuItem, error) {
		return allMenus(ctx, restaurantID)
	})
}

func allMenus(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	q := docstore.Collection(ColMenus).
		Where("restaurantId", restaurantID).
		Ordered("order")
	return findMenus(ctx, q, func(m models.MenuItem) bool { return !m.Deleted() })
}

func GetMenusByCategory(ctx context.Context, restaurantID, categoryID string) Result[[]models.MenuItem] {
	return run("get menus by category", func() ([]models.MenuItem, error) {
		q := docstore.Collection(ColMenus).
			Where("restaurantId", restaurantID).
			Where("categoryId", categoryID).
			Where("lifecycle", string(models.LifecycleActive)).
			Where("status", string(models.StatusAvailable)).
			Ordered("order")
		return findMenus(ctx, q, nil)
	})
}

func findMenus(ctx context.Context, q docstore.Query, keep func(models.MenuItem) bool) ([]models.MenuItem, error) {
	snaps, err := db.Docs.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]models.MenuItem, 0, len(snaps))
	for _, s := range snaps {
		m := models.MenuFromSnapshot(s)
		if keep != nil && !keep(m) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// ReorderMenus writes every order in one atomic batch and refreshes
// updatedAt on each item.
func ReorderMenus(ctx context.Context, updates []OrderUpdate) Result[Empty] {
	return run("reorder menus", func() (Empty, error) {
		t := now()
		batch := make([]docstore.Update, 0, len(updates))
		ids := make([]string, 0, len(updates))
		for _, u := range updates {
			batch = append(batch, docstore.Update{ID: u.ID, Fields: docstore.Doc{"order": u.Order, "updatedAt": t}})
			ids = append(ids, u.ID)
		}
		if err := db.Docs.UpdateAll(ctx, ColMenus, batch); err != nil {
			return Empty{}, notFound(err, ErrMenuNotFound)
		}
		publish(ctx, events.Event{Kind: events.KindItem, Action: events.ActionReordered, IDs: ids})
		return Empty{}, nil
	})
}

// Firestore caps a transaction at 500 writes.
const backfillChunk = 400

// BackfillLifecycle writes the lifecycle field on menu documents stored
// before it existed: deleted for a legacy status of "deleted", active
// otherwise. It returns how many documents were changed and is safe to
// run repeatedly.
func BackfillLifecycle(ctx context.Context) Result[int] {
	return run("backfill lifecycle", func() (int, error) {
		snaps, err := db.Docs.Find(ctx, docstore.Collection(ColMenus))
		if err != nil {
			return 0, err
		}
		t := now()
		var batch []docstore.Update
		for _, s := range snaps {
			if _, ok := s.Data["lifecycle"]; ok {
				continue
			}
			f := docstore.Doc{"lifecycle": string(models.LifecycleActive), "updatedAt": t}
			if models.Status(cast.ToString(s.Data["status"])) == models.StatusDeleted {
				f["lifecycle"] = string(models.LifecycleDeleted)
				f["status"] = string(models.StatusUnavailable)
			}
			batch = append(batch, docstore.Update{ID: s.ID, Fields: f})
		}
		done := 0
		for len(batch) > 0 {
			n := min(len(batch), backfillChunk)
			if err := db.Docs.UpdateAll(ctx, ColMenus, batch[:n]); err != nil {
				return done, err
			}
			done += n
			batch = batch[n:]
		}
		return done, nil
	})
}
