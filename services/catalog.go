package services

import (
	"context"
	"strings"

	"flip-menu/models"
)

// CategoryWithMenus is one group of the grouped views.
type CategoryWithMenus struct {
	models.Category
	Menus []models.MenuItem `json:"menus"`
}

type MenuStats struct {
	Total       int            `json:"total"`
	Available   int            `json:"available"`
	Unavailable int            `json:"unavailable"`
	ByCategory  map[string]int `json:"byCategory"`
}

// GetMenusWithCategories groups available items under the active
// categories of the restaurant.
func GetMenusWithCategories(ctx context.Context, restaurantID string) Result[[]CategoryWithMenus] {
	return run("get menus with categories", func() ([]CategoryWithMenus, error) {
		return grouped(ctx, restaurantID, availableMenus)
	})
}

// GetAllMenusWithCategories is the admin tree: every non-deleted item.
func GetAllMenusWithCategories(ctx context.Context, restaurantID string) Result[[]CategoryWithMenus] {
	return run("get all menus with categories", func() ([]CategoryWithMenus, error) {
		return grouped(ctx, restaurantID, allMenus)
	})
}

func grouped(ctx context.Context, restaurantID string, list func(context.Context, string) ([]models.MenuItem, error)) ([]CategoryWithMenus, error) {
	cats, err := categoriesByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	items, err := list(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return groupByCategory(cats, items), nil
}

// groupByCategory keeps category order and item order. Items whose category
// is not in cats are dropped.
func groupByCategory(cats []models.Category, items []models.MenuItem) []CategoryWithMenus {
	out := make([]CategoryWithMenus, len(cats))
	idx := make(map[string]int, len(cats))
	for i, c := range cats {
		out[i] = CategoryWithMenus{Category: c, Menus: []models.MenuItem{}}
		idx[c.ID] = i
	}
	for _, m := range items {
		if i, ok := idx[m.CategoryID]; ok {
			out[i].Menus = append(out[i].Menus, m)
		}
	}
	return out
}

// Flatten concatenates the groups in category order.
func Flatten(groups []CategoryWithMenus) []models.MenuItem {
	var n int
	for _, g := range groups {
		n += len(g.Menus)
	}
	out := make([]models.MenuItem, 0, n)
	for _, g := range groups {
		out = append(out, g.Menus...)
	}
	return out
}

// SearchMenus matches available items whose local name, English name or
// description contains term, ignoring case.
func SearchMenus(ctx context.Context, restaurantID, term string) Result[[]models.MenuItem] {
	return run("search menus", func() ([]models.MenuItem, error) {
		items, err := availableMenus(ctx, restaurantID)
		if err != nil {
			return nil, err
		}
		needle := strings.ToLower(term)
		out := make([]models.MenuItem, 0)
		for _, m := range items {
			if containsFold(m.NameTh, needle) || containsFold(m.NameEn, needle) || containsFold(m.Description, needle) {
				out = append(out, m)
			}
		}
		return out, nil
	})
}

func containsFold(s, lowerNeedle string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

// GetMenuStats counts the non-deleted items of a restaurant.
func GetMenuStats(ctx context.Context, restaurantID string) Result[MenuStats] {
	return run("get menu stats", func() (MenuStats, error) {
		items, err := allMenus(ctx, restaurantID)
		if err != nil {
			return MenuStats{}, err
		}
		return statsOf(items), nil
	})
}

func statsOf(items []models.MenuItem) MenuStats {
	st := MenuStats{ByCategory: make(map[string]int)}
	for _, m := range items {
		st.Total++
		switch m.Status {
		case models.StatusAvailable:
			st.Available++
		case models.StatusUnavailable:
			st.Unavailable++
		}
		st.ByCategory[m.CategoryID]++
	}
	return st
}
