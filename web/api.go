package web

import (
	"errors"
	"net/http"

	"flip-menu/docstore"
	"flip-menu/models"
	"flip-menu/services"

	"github.com/gin-gonic/gin"
)

func (s *Server) apiRoutes(api *gin.RouterGroup) {
	api.GET("/restaurants/:id", func(c *gin.Context) {
		respond(c, services.GetRestaurant(c.Request.Context(), c.Param("id")))
	})
	api.GET("/restaurants/:id/categories", func(c *gin.Context) {
		respond(c, services.GetCategoriesByRestaurant(c.Request.Context(), c.Param("id")))
	})
	api.GET("/restaurants/:id/categories/:categoryId/menus", func(c *gin.Context) {
		respond(c, services.GetMenusByCategory(c.Request.Context(), c.Param("id"), c.Param("categoryId")))
	})
	api.GET("/restaurants/:id/menus", func(c *gin.Context) {
		respond(c, services.GetMenusByRestaurant(c.Request.Context(), c.Param("id")))
	})
	api.GET("/restaurants/:id/grouped", func(c *gin.Context) {
		respond(c, services.GetMenusWithCategories(c.Request.Context(), c.Param("id")))
	})
	api.GET("/restaurants/:id/search", func(c *gin.Context) {
		respond(c, services.SearchMenus(c.Request.Context(), c.Param("id"), c.Query("q")))
	})
	api.GET("/menus/:id", func(c *gin.Context) {
		respond(c, services.GetMenuByID(c.Request.Context(), c.Param("id")))
	})

	admin := api.Group("", s.requireAdmin(true))
	{
		admin.GET("/restaurants/:id/menus/all", func(c *gin.Context) {
			respond(c, services.GetAllMenusByRestaurant(c.Request.Context(), c.Param("id")))
		})
		admin.GET("/restaurants/:id/grouped/all", func(c *gin.Context) {
			respond(c, services.GetAllMenusWithCategories(c.Request.Context(), c.Param("id")))
		})
		admin.GET("/restaurants/:id/stats", func(c *gin.Context) {
			respond(c, services.GetMenuStats(c.Request.Context(), c.Param("id")))
		})
		admin.POST("/restaurants", func(c *gin.Context) {
			var r models.Restaurant
			if !bind(c, &r) {
				return
			}
			respond(c, services.CreateRestaurant(c.Request.Context(), r))
		})
		admin.PATCH("/restaurants/:id", func(c *gin.Context) {
			var fields docstore.Doc
			if !bind(c, &fields) {
				return
			}
			respond(c, services.UpdateRestaurant(c.Request.Context(), c.Param("id"), fields))
		})

		admin.POST("/categories", func(c *gin.Context) {
			cat := models.Category{IsActive: true}
			if !bind(c, &cat) {
				return
			}
			respond(c, services.CreateCategory(c.Request.Context(), cat))
		})
		admin.PATCH("/categories/:id", func(c *gin.Context) {
			var fields docstore.Doc
			if !bind(c, &fields) {
				return
			}
			respond(c, services.UpdateCategory(c.Request.Context(), c.Param("id"), fields))
		})
		admin.DELETE("/categories/:id", func(c *gin.Context) {
			respond(c, services.DeleteCategory(c.Request.Context(), c.Param("id")))
		})
		admin.POST("/categories/reorder", func(c *gin.Context) {
			var updates []services.OrderUpdate
			if !bind(c, &updates) {
				return
			}
			respond(c, services.ReorderCategories(c.Request.Context(), updates))
		})

		admin.POST("/menus", func(c *gin.Context) {
			var f menuJSON
			if !bind(c, &f) {
				return
			}
			respond(c, services.SaveMenu(c.Request.Context(), f.form("")))
		})
		admin.PATCH("/menus/:id", func(c *gin.Context) {
			var fields docstore.Doc
			if !bind(c, &fields) {
				return
			}
			respond(c, services.UpdateMenu(c.Request.Context(), c.Param("id"), fields))
		})
		admin.DELETE("/menus/:id", func(c *gin.Context) {
			respond(c, services.DeleteMenu(c.Request.Context(), c.Param("id")))
		})
		admin.POST("/menus/reorder", func(c *gin.Context) {
			var updates []services.OrderUpdate
			if !bind(c, &updates) {
				return
			}
			respond(c, services.ReorderMenus(c.Request.Context(), updates))
		})
		admin.POST("/seed", func(c *gin.Context) {
			respond(c, services.SeedSampleData(c.Request.Context()))
		})
	}
}

type menuJSON struct {
	RestaurantID string        `json:"restaurantId"`
	CategoryID   string        `json:"categoryId"`
	NameTh       string        `json:"nameTh"`
	NameEn       string        `json:"nameEn"`
	Description  string        `json:"description"`
	Image        string        `json:"image"`
	Price        float64       `json:"price"`
	Status       models.Status `json:"status"`
}

func (m menuJSON) form(id string) services.MenuForm {
	st := m.Status
	if st == "" {
		st = models.StatusAvailable
	}
	return services.MenuForm{
		ID:           id,
		RestaurantID: m.RestaurantID,
		CategoryID:   m.CategoryID,
		NameTh:       m.NameTh,
		NameEn:       m.NameEn,
		Description:  m.Description,
		Image:        m.Image,
		Price:        m.Price,
		Status:       st,
	}
}

func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, services.Fail[services.Empty](err))
		return false
	}
	return true
}

// respond writes the result body with a status derived from its error.
func respond[T any](c *gin.Context, r services.Result[T]) {
	c.JSON(statusOf(r.Err()), r)
}

func statusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case services.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrRestaurantNotFound),
		errors.Is(err, services.ErrMenuNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, docstore.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
