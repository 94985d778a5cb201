package models

import (
	"time"

	"flip-menu/docstore"

	"github.com/spf13/cast"
)

// Status is the availability of a menu item. StatusDeleted is never stored
// by this service; it is what DisplayStatus reports for tombstoned items
// and what older documents carry in place of a lifecycle.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusDeleted     Status = "deleted"
)

func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusUnavailable
}

// Lifecycle tracks soft deletion independently of availability.
type Lifecycle string

const (
	LifecycleActive  Lifecycle = "active"
	LifecycleDeleted Lifecycle = "deleted"
)

func (l Lifecycle) Valid() bool {
	return l == LifecycleActive || l == LifecycleDeleted
}

type MenuItem struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	CategoryID   string    `json:"categoryId"`
	NameTh       string    `json:"nameTh"`
	NameEn       string    `json:"nameEn"`
	Price        float64   `json:"price"`
	Description  string    `json:"description,omitempty"`
	Image        string    `json:"image,omitempty"`
	Status       Status    `json:"status"`
	Lifecycle    Lifecycle `json:"lifecycle"`
	Order        int64     `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (m MenuItem) Deleted() bool {
	return m.Lifecycle == LifecycleDeleted
}

// DisplayStatus folds the lifecycle back into the three-value status shown
// to admins and API clients.
func (m MenuItem) DisplayStatus() Status {
	if m.Deleted() {
		return StatusDeleted
	}
	return m.Status
}

// Doc returns the stored fields. Optional text fields are left out when
// empty, and an unset lifecycle is written as active.
func (m MenuItem) Doc() docstore.Doc {
	lc := m.Lifecycle
	if lc == "" {
		lc = LifecycleActive
	}
	d := docstore.Doc{
		"restaurantId": m.RestaurantID,
		"categoryId":   m.CategoryID,
		"nameTh":       m.NameTh,
		"nameEn":       m.NameEn,
		"price":        m.Price,
		"status":       string(m.Status),
		"lifecycle":    string(lc),
		"order":        m.Order,
	}
	if m.Description != "" {
		d["description"] = m.Description
	}
	if m.Image != "" {
		d["image"] = m.Image
	}
	return d
}

func MenuFromSnapshot(s docstore.Snapshot) MenuItem {
	d := s.Data
	m := MenuItem{
		ID:           s.ID,
		RestaurantID: cast.ToString(d["restaurantId"]),
		CategoryID:   cast.ToString(d["categoryId"]),
		NameTh:       cast.ToString(d["nameTh"]),
		NameEn:       cast.ToString(d["nameEn"]),
		Price:        cast.ToFloat64(d["price"]),
		Description:  cast.ToString(d["description"]),
		Image:        cast.ToString(d["image"]),
		Status:       Status(cast.ToString(d["status"])),
		Lifecycle:    Lifecycle(cast.ToString(d["lifecycle"])),
		Order:        cast.ToInt64(d["order"]),
		CreatedAt:    toTime(d["createdAt"]),
		UpdatedAt:    toTime(d["updatedAt"]),
	}
	if m.Status == StatusDeleted {
		// Written before lifecycle existed.
		m.Lifecycle = LifecycleDeleted
		m.Status = StatusUnavailable
	}
	if m.Lifecycle == "" {
		m.Lifecycle = LifecycleActive
	}
	return m
}
