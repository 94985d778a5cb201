package mongostore

import (
	"testing"
	"time"

	"flip-menu/docstore"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFind(t *testing.T) {
	filter, opts := buildFind(docstore.Collection("menus").Where("restaurantId", "r1").Where("status", "available").Ordered("order"))
	want := bson.D{
		{Key: "restaurantId", Value: "r1"},
		{Key: "status", Value: "available"},
		{Key: "order", Value: bson.M{"$exists": true}},
	}
	if len(filter) != len(want) {
		t.Fatalf("filter = %v", filter)
	}
	for i := range want {
		if filter[i].Key != want[i].Key {
			t.Errorf("filter[%d].Key = %s, want %s", i, filter[i].Key, want[i].Key)
		}
	}
	sort, ok := opts.Sort.(bson.D)
	if !ok || len(sort) != 2 || sort[0].Key != "order" || sort[1].Key != "_id" {
		t.Errorf("sort = %v", opts.Sort)
	}
}

func TestToSnapshotNormalizes(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	snap := toSnapshot(bson.M{
		"_id":       "m1",
		"order":     int32(3),
		"createdAt": primitive.NewDateTimeFromTime(now),
		"settings":  bson.M{"itemsPerPage": int32(6)},
		"tags":      primitive.A{"spicy"},
	})
	if snap.ID != "m1" {
		t.Errorf("ID = %q", snap.ID)
	}
	if _, ok := snap.Data["_id"]; ok {
		t.Error("_id leaked into data")
	}
	if snap.Data["order"] != int64(3) {
		t.Errorf("order = %#v", snap.Data["order"])
	}
	if got, ok := snap.Data["createdAt"].(time.Time); !ok || !got.Equal(now) {
		t.Errorf("createdAt = %#v", snap.Data["createdAt"])
	}
	if s, ok := snap.Data["settings"].(map[string]any); !ok || s["itemsPerPage"] != int64(6) {
		t.Errorf("settings = %#v", snap.Data["settings"])
	}
	if tags, ok := snap.Data["tags"].([]any); !ok || tags[0] != "spicy" {
		t.Errorf("tags = %#v", snap.Data["tags"])
	}
}
