package services

import (
	"context"

	"flip-menu/db"
	"flip-menu/docstore"
	"flip-menu/events"
	"flip-menu/models"
)

func CreateRestaurant(ctx context.Context, r models.Restaurant) Result[ID] {
	return run("create restaurant", func() (ID, error) {
		d := r.Doc()
		t := now()
		d["createdAt"] = t
		d["updatedAt"] = t
		id, err := db.Docs.Create(ctx, ColRestaurants, d)
		if err != nil {
			return "", err
		}
		publish(ctx, events.Event{Kind: events.KindRestaurant, Action: events.ActionCreated, ID: id, RestaurantID: id})
		return ID(id), nil
	})
}

func GetRestaurant(ctx context.Context, id string) Result[models.Restaurant] {
	return run("get restaurant", func() (models.Restaurant, error) {
		snap, err := db.Docs.Get(ctx, ColRestaurants, id)
		if err != nil {
			return models.Restaurant{}, notFound(err, ErrRestaurantNotFound)
		}
		return models.RestaurantFromSnapshot(snap), nil
	})
}

// UpdateRestaurant merges fields into the restaurant and refreshes updatedAt.
func UpdateRestaurant(ctx context.Context, id string, fields docstore.Doc) Result[Empty] {
	return run("update restaurant", func() (Empty, error) {
		d := docstore.Clone(fields)
		if d == nil {
			d = docstore.Doc{}
		}
		delete(d, "id")
		d["updatedAt"] = now()
		if err := db.Docs.Update(ctx, ColRestaurants, id, d); err != nil {
			return Empty{}, notFound(err, ErrRestaurantNotFound)
		}
		publish(ctx, events.Event{Kind: events.KindRestaurant, Action: events.ActionUpdated, ID: id, RestaurantID: id})
		return Empty{}, nil
	})
}
