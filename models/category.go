package models

import (
	"time"

	"flip-menu/docstore"

	"github.com/spf13/cast"
)

// Category groups menu items. Deleting one only clears IsActive.
type Category struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	Name         string    `json:"name"`
	NameEn       string    `json:"nameEn"`
	Color        string    `json:"color"`
	Icon         string    `json:"icon"`
	Order        int64     `json:"order"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (c Category) Doc() docstore.Doc {
	return docstore.Doc{
		"restaurantId": c.RestaurantID,
		"name":         c.Name,
		"nameEn":       c.NameEn,
		"color":        c.Color,
		"icon":         c.Icon,
		"order":        c.Order,
		"isActive":     c.IsActive,
	}
}

func CategoryFromSnapshot(s docstore.Snapshot) Category {
	d := s.Data
	return Category{
		ID:           s.ID,
		RestaurantID: cast.ToString(d["restaurantId"]),
		Name:         cast.ToString(d["name"]),
		NameEn:       cast.ToString(d["nameEn"]),
		Color:        cast.ToString(d["color"]),
		Icon:         cast.ToString(d["icon"]),
		Order:        cast.ToInt64(d["order"]),
		IsActive:     cast.ToBool(d["isActive"]),
		CreatedAt:    toTime(d["createdAt"]),
	}
}
