package services

import (
	"context"
	"fmt"

	"flip-menu/models"
)

var SampleRestaurant = models.Restaurant{
	Name:        "ร้านอาหารดีมาก",
	NameEn:      "Good Food Restaurant",
	Description: "ร้านอาหารไทยต้นตำรับ",
	Phone:       "081-234-5678",
	Address:     "123 ถนนสุขุมวิท กรุงเทพฯ",
	OwnerID:     "admin",
	Settings: models.Settings{
		Theme:        "classic",
		Currency:     "THB",
		Language:     "th",
		ItemsPerPage: ItemsPerPage,
	},
}

var SampleCategories = []models.Category{
	{Name: "อาหารจานเดียว", NameEn: "One Dish Meals", Color: "#FF6B6B", Icon: "🍛", Order: 1, IsActive: true},
	{Name: "อาหารคาว", NameEn: "Main Dishes", Color: "#4ECDC4", Icon: "🍽️", Order: 2, IsActive: true},
	{Name: "ของหวาน", NameEn: "Desserts", Color: "#45B7D1", Icon: "🍰", Order: 3, IsActive: true},
	{Name: "เครื่องดื่ม", NameEn: "Beverages", Color: "#F39C12", Icon: "🥤", Order: 4, IsActive: true},
}

// SampleMenu names its category by local name; the seeder resolves the id.
type SampleMenu struct {
	models.MenuItem
	CategoryName string
}

var SampleMenus = []SampleMenu{
	{sampleItem("ข้าวผัดกุ้ง", "Fried Rice with Shrimp", "ข้าวผัดกุ้งสดใหม่ เสิร์ฟพร้อมผักสด และไข่ดาว", 120, 1), "อาหารจานเดียว"},
	{sampleItem("ผัดไทย", "Pad Thai", "ผัดไทยแท้ รสชาติต้นตำรับ", 80, 2), "อาหารจานเดียว"},
	{sampleItem("ต้มยำกุ้ง", "Tom Yum Goong", "ต้มยำกุ้งใส รสจัดจ้าน เปรี้ยว เผ็ด เค็ม หวาน ครบรส", 150, 1), "อาหารคาว"},
	{sampleItem("แกงเขียวหวานไก่", "Green Curry Chicken", "แกงเขียวหวานไก่ รสชาติเข้มข้น เสิร์ฟพร้อมข้าวสวย", 130, 2), "อาหารคาว"},
	{sampleItem("มะม่วงข้าวเหนียว", "Mango Sticky Rice", "ข้าวเหนียวหวาน เสิร์ฟพร้อมมะม่วงสุก", 60, 1), "ของหวาน"},
	{sampleItem("น้ำมะนาว", "Lime Juice", "น้ำมะนาวสดใหม่ หวานเปรี้ยว สดชื่น", 35, 1), "เครื่องดื่ม"},
}

func sampleItem(nameTh, nameEn, desc string, price float64, order int64) models.MenuItem {
	return models.MenuItem{
		NameTh:      nameTh,
		NameEn:      nameEn,
		Description: desc,
		Price:       price,
		Status:      models.StatusAvailable,
		Lifecycle:   models.LifecycleActive,
		Order:       order,
	}
}

// SeedSampleData creates the sample restaurant, its categories and its
// menu items one document at a time and returns the restaurant id. A
// failure stops the run and leaves what was already written.
func SeedSampleData(ctx context.Context) Result[ID] {
	return run("seed sample data", func() (ID, error) {
		restaurantID, err := CreateRestaurant(ctx, SampleRestaurant).Unwrap()
		if err != nil {
			return "", err
		}

		categoryIDs := make(map[string]string, len(SampleCategories))
		for _, c := range SampleCategories {
			c.RestaurantID = string(restaurantID)
			id, err := CreateCategory(ctx, c).Unwrap()
			if err != nil {
				return "", fmt.Errorf("category %s: %w", c.NameEn, err)
			}
			categoryIDs[c.Name] = string(id)
		}

		for _, sm := range SampleMenus {
			m := sm.MenuItem
			m.RestaurantID = string(restaurantID)
			m.CategoryID = categoryIDs[sm.CategoryName]
			if _, err := CreateMenu(ctx, m).Unwrap(); err != nil {
				return "", fmt.Errorf("menu %s: %w", m.NameEn, err)
			}
		}
		return restaurantID, nil
	})
}
