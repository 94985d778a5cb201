package services

import (
	"context"

	"flip-menu/db"
	"flip-menu/docstore"
)

// SmokeReport summarises one run of GetMenusWithCategories.
type SmokeReport struct {
	Categories int `json:"categories"`
	Items      int `json:"items"`
}

// WriteTestDocument checks the store connection by writing to the scratch
// collection.
func WriteTestDocument(ctx context.Context) Result[ID] {
	return run("connection test", func() (ID, error) {
		id, err := db.Docs.Create(ctx, ColTest, docstore.Doc{
			"message":   "Hello from flip-menu!",
			"timestamp": now(),
		})
		return ID(id), err
	})
}

func SmokeTest(ctx context.Context, restaurantID string) Result[SmokeReport] {
	groups, err := GetMenusWithCategories(ctx, restaurantID).Unwrap()
	if err != nil {
		return Fail[SmokeReport](err)
	}
	return Ok(SmokeReport{Categories: len(groups), Items: len(Flatten(groups))})
}
