package services

import (
	"context"

	"flip-menu/db"
	"flip-menu/docstore"
	"flip-menu/events"
	"flip-menu/models"
)

// OrderUpdate is one (id, order) pair of a reorder batch.
type OrderUpdate struct {
	ID    string `json:"id"`
	Order int64  `json:"order"`
}

func CreateCategory(ctx context.Context, c models.Category) Result[ID] {
	return run("create category", func() (ID, error) {
		d := c.Doc()
		d["createdAt"] = now()
		id, err := db.Docs.Create(ctx, ColCategories, d)
		if err != nil {
			return "", err
		}
		publish(ctx, events.Event{Kind: events.KindCategory, Action: events.ActionCreated, ID: id, RestaurantID: c.RestaurantID})
		return ID(id), nil
	})
}

// UpdateCategory merges fields as given. Categories carry no updatedAt.
func UpdateCategory(ctx context.Context, id string, fields docstore.Doc) Result[Empty] {
	return run("update category", func() (Empty, error) {
		d := docstore.Clone(fields)
		delete(d, "id")
		if err := db.Docs.Update(ctx, ColCategories, id, d); err != nil {
			return Empty{}, notFound(err, ErrCategoryNotFound)
		}
		publish(ctx, events.Event{Kind: events.KindCategory, Action: events.ActionUpdated, ID: id})
		return Empty{}, nil
	})
}

// DeleteCategory deactivates the category. Its menu items are untouched.
func DeleteCategory(ctx context.Context, id string) Result[Empty] {
	return run("delete category", func() (Empty, error) {
		if err := db.Docs.Update(ctx, ColCategories, id, docstore.Doc{"isActive": false}); err != nil {
			return Empty{}, notFound(err, ErrCategoryNotFound)
		}
		publish(ctx, events.Event{Kind: events.KindCategory, Action: events.ActionDeleted, ID: id})
		return Empty{}, nil
	})
}

// GetCategoriesByRestaurant lists active categories by order.
func GetCategoriesByRestaurant(ctx context.Context, restaurantID string) Result[[]models.Category] {
	return run("get categories", func() ([]models.Category, error) {
		return categoriesByRestaurant(ctx, restaurantID)
	})
}

func categoriesByRestaurant(ctx context.Context, restaurantID string) ([]models.Category, error) {
	q := docstore.Collection(ColCategories).
		Where("restaurantId", restaurantID).
		Where("isActive", true).
		Ordered("order")
	snaps, err := db.Docs.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, models.CategoryFromSnapshot(s))
	}
	return out, nil
}

// ReorderCategories writes every order in one atomic batch.
func ReorderCategories(ctx context.Context, updates []OrderUpdate) Result[Empty] {
	return run("reorder categories", func() (Empty, error) {
		batch := make([]docstore.Update, 0, len(updates))
		ids := make([]string, 0, len(updates))
		for _, u := range updates {
			batch = append(batch, docstore.Update{ID: u.ID, Fields: docstore.Doc{"order": u.Order}})
			ids = append(ids, u.ID)
		}
		if err := db.Docs.UpdateAll(ctx, ColCategories, batch); err != nil {
			return Empty{}, notFound(err, ErrCategoryNotFound)
		}
		publish(ctx, events.Event{Kind: events.KindCategory, Action: events.ActionReordered, IDs: ids})
		return Empty{}, nil
	})
}
