package services

import (
	"context"
	"errors"
	"log"
	"time"

	"flip-menu/docstore"
	"flip-menu/events"
)

const (
	ColRestaurants   = "restaurants"
	ColCategories    = "categories"
	ColMenus         = "menus"
	ColTest          = "test"
	ColLoginThrottle = "login_throttle"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuNotFound       = errors.New("menu not found")
	ErrCategoryNotFound   = errors.New("category not found")
)

// Events receives a notice after every successful mutation. Publish
// failures are logged and never fail the mutation.
var Events events.Publisher = events.Nop{}

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

func publish(ctx context.Context, e events.Event) {
	if Events == nil {
		return
	}
	e.At = now()
	if err := Events.Publish(ctx, e); err != nil {
		log.Printf("publish %s: %v", e.RoutingKey(), err)
	}
}

// notFound swaps the store's sentinel for a domain error.
func notFound(err, domain error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return domain
	}
	return err
}
