package web

import (
	"net/http"

	"flip-menu/lang"
	"flip-menu/services"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// exportXLSX downloads the admin tree, one row per non-deleted item.
func (s *Server) exportXLSX(c *gin.Context) {
	groups, err := services.GetAllMenusWithCategories(c.Request.Context(), s.cfg.RestaurantID).Unwrap()
	if err != nil {
		c.JSON(http.StatusBadGateway, services.Fail[services.Empty](err))
		return
	}
	file, err := buildWorkbook(groups, langOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create Excel sheet"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=menu.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to write Excel file"})
	}
}

func buildWorkbook(groups []services.CategoryWithMenus, l string) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Menu")
	if err != nil {
		return nil, err
	}
	headers := []string{
		"ID", "Category", "NameTh", "NameEn", "Price", "Status", "Order", "Description", "UpdatedAt",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}
	for _, g := range groups {
		for _, m := range g.Menus {
			row := sheet.AddRow()
			row.AddCell().SetValue(m.ID)
			row.AddCell().SetValue(lang.Name(l, g.Name, g.NameEn))
			row.AddCell().SetValue(m.NameTh)
			row.AddCell().SetValue(m.NameEn)
			row.AddCell().SetFloat(m.Price)
			row.AddCell().SetValue(string(m.DisplayStatus()))
			row.AddCell().SetInt64(m.Order)
			row.AddCell().SetValue(m.Description)
			row.AddCell().SetValue(m.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
	}
	return file, nil
}
