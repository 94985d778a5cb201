package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"flip-menu/lang"
	"flip-menu/models"
	"flip-menu/services"

	"github.com/gin-gonic/gin"
)

func (s *Server) diagnosticsPage(c *gin.Context) {
	s.renderDiag(c, http.StatusOK, "")
}

func (s *Server) renderDiag(c *gin.Context, status int, result string) {
	s.render(c, status, "index.html", gin.H{"Title": lang.T(langOf(c), "diag_title"), "Result": result})
}

func (s *Server) diagConnection(c *gin.Context) {
	l := langOf(c)
	id, err := services.WriteTestDocument(c.Request.Context()).Unwrap()
	if err != nil {
		s.renderDiag(c, http.StatusBadGateway, lang.T(l, "diag_failed", err.Error()))
		return
	}
	s.renderDiag(c, http.StatusOK, lang.T(l, "diag_connection_ok", id))
}

func (s *Server) diagSeed(c *gin.Context) {
	l := langOf(c)
	id, err := services.SeedSampleData(c.Request.Context()).Unwrap()
	if err != nil {
		s.renderDiag(c, http.StatusBadGateway, lang.T(l, "diag_failed", err.Error()))
		return
	}
	s.renderDiag(c, http.StatusOK, lang.T(l, "diag_seed_ok", id))
}

func (s *Server) diagSmoke(c *gin.Context) {
	l := langOf(c)
	rep, err := services.SmokeTest(c.Request.Context(), s.cfg.RestaurantID).Unwrap()
	if err != nil {
		s.renderDiag(c, http.StatusBadGateway, lang.T(l, "diag_failed", err.Error()))
		return
	}
	s.renderDiag(c, http.StatusOK, lang.T(l, "diag_smoke_ok", rep.Categories, rep.Items))
}

// menuPage renders one page of the flattened available items. ?from= is
// the page the reader came from and only picks the flip direction.
func (s *Server) menuPage(c *gin.Context) {
	ctx := c.Request.Context()
	l := langOf(c)

	title := lang.T(l, "menu_title")
	currency := "THB"
	if r, err := services.GetRestaurant(ctx, s.cfg.RestaurantID).Unwrap(); err == nil {
		title = lang.Name(l, r.Name, r.NameEn)
		if r.Settings.Currency != "" {
			currency = r.Settings.Currency
		}
	}

	groups, err := services.GetMenusWithCategories(ctx, s.cfg.RestaurantID).Unwrap()
	if err != nil {
		s.render(c, http.StatusBadGateway, "menu.html", gin.H{"Title": title, "Error": lang.T(l, "err_generic", err.Error())})
		return
	}
	items := services.Flatten(groups)
	total := services.TotalPages(len(items), services.ItemsPerPage)
	page := clamp(atoi(c.Query("page")), total)

	flip := ""
	if from := c.Query("from"); from != "" {
		switch f := atoi(from); {
		case f < page:
			flip = "flip-forward"
		case f > page:
			flip = "flip-back"
		}
	}

	cats := make(map[string]*models.Category, len(groups))
	for i := range groups {
		cats[groups[i].ID] = &groups[i].Category
	}
	s.render(c, http.StatusOK, "menu.html", gin.H{
		"Title":      title,
		"Items":      services.Paginate(items, page, services.ItemsPerPage),
		"Categories": cats,
		"Page":       page,
		"TotalPages": total,
		"FlipClass":  flip,
		"Currency":   currency,
	})
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func clamp(page, total int) int {
	if page >= total {
		page = total - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}

func (s *Server) adminPage(c *gin.Context) {
	ctx := c.Request.Context()
	l := langOf(c)
	data := gin.H{"Title": lang.T(l, "admin_title"), "Stats": services.MenuStats{}}

	groups, err := services.GetAllMenusWithCategories(ctx, s.cfg.RestaurantID).Unwrap()
	if err != nil {
		data["Error"] = lang.T(l, "err_generic", err.Error())
		s.render(c, http.StatusBadGateway, "admin.html", data)
		return
	}
	stats, err := services.GetMenuStats(ctx, s.cfg.RestaurantID).Unwrap()
	if err != nil {
		data["Error"] = lang.T(l, "err_generic", err.Error())
	} else {
		data["Stats"] = stats
	}
	data["Groups"] = groups
	s.render(c, http.StatusOK, "admin.html", data)
}

func (s *Server) renderForm(c *gin.Context, status int, f services.MenuForm, errMsg string) {
	l := langOf(c)
	cats, err := services.GetCategoriesByRestaurant(c.Request.Context(), s.cfg.RestaurantID).Unwrap()
	if err != nil && errMsg == "" {
		errMsg = lang.T(l, "err_generic", err.Error())
	}
	title := lang.T(l, "add_menu")
	if f.ID != "" {
		title = lang.T(l, "edit_menu")
	}
	s.render(c, status, "form.html", gin.H{"Title": title, "Form": f, "Categories": cats, "Error": errMsg})
}

func (s *Server) newMenuPage(c *gin.Context) {
	s.renderForm(c, http.StatusOK, services.MenuForm{Status: models.StatusAvailable}, "")
}

func (s *Server) editMenuPage(c *gin.Context) {
	m, err := services.GetMenuByID(c.Request.Context(), c.Param("id")).Unwrap()
	if err != nil || m.Deleted() {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	s.renderForm(c, http.StatusOK, services.FormFromItem(m), "")
}

// saveMenu handles both create (no :id) and edit.
func (s *Server) saveMenu(c *gin.Context) {
	l := langOf(c)
	f := services.MenuForm{
		ID:           c.Param("id"),
		RestaurantID: s.cfg.RestaurantID,
		CategoryID:   c.PostForm("categoryId"),
		NameTh:       c.PostForm("nameTh"),
		NameEn:       c.PostForm("nameEn"),
		Description:  c.PostForm("description"),
		Image:        c.PostForm("image"),
		Status:       models.Status(c.DefaultPostForm("status", string(models.StatusAvailable))),
	}
	price, err := services.ParsePrice(c.PostForm("price"))
	if err == nil {
		f.Price = price
		err = services.SaveMenu(c.Request.Context(), f).Err()
	}
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			s.renderForm(c, http.StatusUnprocessableEntity, f, lang.T(l, "err_"+ve.Field))
			return
		}
		s.renderForm(c, http.StatusBadGateway, f, lang.T(l, "err_generic", err.Error()))
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (s *Server) confirmDeletePage(c *gin.Context) {
	m, err := services.GetMenuByID(c.Request.Context(), c.Param("id")).Unwrap()
	if err != nil || m.Deleted() {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	s.render(c, http.StatusOK, "confirm.html", gin.H{"Title": lang.T(langOf(c), "delete"), "Item": m})
}

func (s *Server) deleteMenu(c *gin.Context) {
	if err := services.DeleteMenu(c.Request.Context(), c.Param("id")).Err(); err != nil {
		s.render(c, http.StatusBadGateway, "admin.html", gin.H{
			"Title": lang.T(langOf(c), "admin_title"),
			"Error": fmt.Sprintf("%s: %v", lang.T(langOf(c), "delete"), err),
			"Stats": services.MenuStats{},
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}
