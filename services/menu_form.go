package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flip-menu/docstore"
	"flip-menu/models"

	"github.com/spf13/cast"
)

// ValidationError is a form problem found before any store call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// MenuForm is what the admin submits. An empty ID means create.
type MenuForm struct {
	ID           string
	RestaurantID string
	CategoryID   string
	NameTh       string
	NameEn       string
	Description  string
	Image        string
	Price        float64
	Status       models.Status
}

// ParsePrice accepts the decimal text of a form field.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	p, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, &ValidationError{Field: "price", Message: fmt.Sprintf("not a number: %q", s)}
	}
	return p, nil
}

func (f MenuForm) Validate() error {
	switch {
	case strings.TrimSpace(f.NameTh) == "":
		return &ValidationError{Field: "nameTh", Message: "local name is required"}
	case strings.TrimSpace(f.CategoryID) == "":
		return &ValidationError{Field: "categoryId", Message: "category is required"}
	case f.Price < 0:
		return &ValidationError{Field: "price", Message: "price must be >= 0"}
	case !f.Status.Valid():
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", f.Status)}
	}
	return nil
}

// SaveMenu validates the form and then creates or updates the item. New
// items get order = now in milliseconds; edits keep their order.
func SaveMenu(ctx context.Context, f MenuForm) Result[ID] {
	if err := f.Validate(); err != nil {
		return Fail[ID](err)
	}
	f.NameTh = strings.TrimSpace(f.NameTh)
	f.NameEn = strings.TrimSpace(f.NameEn)
	f.Description = strings.TrimSpace(f.Description)
	f.Image = strings.TrimSpace(f.Image)

	if f.ID == "" {
		return CreateMenu(ctx, models.MenuItem{
			RestaurantID: f.RestaurantID,
			CategoryID:   f.CategoryID,
			NameTh:       f.NameTh,
			NameEn:       f.NameEn,
			Description:  f.Description,
			Image:        f.Image,
			Price:        f.Price,
			Status:       f.Status,
			Lifecycle:    models.LifecycleActive,
			Order:        now().UnixMilli(),
		})
	}

	res := UpdateMenu(ctx, f.ID, docstore.Doc{
		"categoryId":  f.CategoryID,
		"nameTh":      f.NameTh,
		"nameEn":      f.NameEn,
		"description": f.Description,
		"image":       f.Image,
		"price":       f.Price,
		"status":      string(f.Status),
	})
	if !res.OK() {
		return Fail[ID](res.Err())
	}
	return Ok(ID(f.ID))
}

// FormFromItem prefills the edit form.
func FormFromItem(m models.MenuItem) MenuForm {
	return MenuForm{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		CategoryID:   m.CategoryID,
		NameTh:       m.NameTh,
		NameEn:       m.NameEn,
		Description:  m.Description,
		Image:        m.Image,
		Price:        m.Price,
		Status:       m.Status,
	}
}
