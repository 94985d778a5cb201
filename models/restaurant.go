package models

import (
	"time"

	"flip-menu/docstore"

	"github.com/spf13/cast"
)

type Settings struct {
	Theme        string `json:"theme"`
	Currency     string `json:"currency"`
	Language     string `json:"language"`
	ItemsPerPage int    `json:"itemsPerPage"`
}

type Restaurant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	NameEn      string    `json:"nameEn"`
	Description string    `json:"description"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	OwnerID     string    `json:"ownerId"`
	Settings    Settings  `json:"settings"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Doc returns the stored fields. Timestamps are stamped by the services.
func (r Restaurant) Doc() docstore.Doc {
	return docstore.Doc{
		"name":        r.Name,
		"nameEn":      r.NameEn,
		"description": r.Description,
		"phone":       r.Phone,
		"address":     r.Address,
		"ownerId":     r.OwnerID,
		"settings": map[string]any{
			"theme":        r.Settings.Theme,
			"currency":     r.Settings.Currency,
			"language":     r.Settings.Language,
			"itemsPerPage": int64(r.Settings.ItemsPerPage),
		},
	}
}

func RestaurantFromSnapshot(s docstore.Snapshot) Restaurant {
	d := s.Data
	settings := cast.ToStringMap(d["settings"])
	return Restaurant{
		ID:          s.ID,
		Name:        cast.ToString(d["name"]),
		NameEn:      cast.ToString(d["nameEn"]),
		Description: cast.ToString(d["description"]),
		Phone:       cast.ToString(d["phone"]),
		Address:     cast.ToString(d["address"]),
		OwnerID:     cast.ToString(d["ownerId"]),
		Settings: Settings{
			Theme:        cast.ToString(settings["theme"]),
			Currency:     cast.ToString(settings["currency"]),
			Language:     cast.ToString(settings["language"]),
			ItemsPerPage: cast.ToInt(settings["itemsPerPage"]),
		},
		CreatedAt: toTime(d["createdAt"]),
		UpdatedAt: toTime(d["updatedAt"]),
	}
}

// toTime accepts native times and the RFC 3339 strings the JSON backends
// hand back. Anything else is the zero time.
func toTime(v any) time.Time {
	if v == nil {
		return time.Time{}
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
