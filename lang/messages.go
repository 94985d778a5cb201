package lang

var messages = map[string]map[string]string{
	Th: {
		"app_title":           "เมนูดิจิทัล",
		"menu_title":          "เมนูอาหาร",
		"menu_empty":          "ยังไม่มีรายการอาหาร",
		"page_of":             "หน้า %d / %d",
		"prev":                "◀ ก่อนหน้า",
		"next":                "ถัดไป ▶",
		"price":               "ราคา",
		"status_available":    "พร้อมขาย",
		"status_unavailable":  "หมด",
		"status_deleted":      "ลบแล้ว",
		"admin_title":         "จัดการเมนู",
		"add_menu":            "เพิ่มเมนู",
		"edit_menu":           "แก้ไขเมนู",
		"delete":              "ลบ",
		"edit":                "แก้ไข",
		"save":                "บันทึก",
		"cancel":              "ยกเลิก",
		"confirm_delete":      "ยืนยันการลบ \"%s\"?",
		"confirm_yes":         "ใช่ ลบเลย",
		"field_nameTh":        "ชื่อเมนู (ไทย)",
		"field_nameEn":        "ชื่อเมนู (อังกฤษ)",
		"field_price":         "ราคา",
		"field_description":   "รายละเอียด",
		"field_image":         "รูปภาพ (URL)",
		"field_categoryId":    "หมวดหมู่",
		"field_status":        "สถานะ",
		"choose_category":     "-- เลือกหมวดหมู่ --",
		"err_nameTh":          "กรุณากรอกชื่อเมนู",
		"err_categoryId":      "กรุณาเลือกหมวดหมู่",
		"err_price":           "ราคาต้องเป็นตัวเลขไม่ติดลบ",
		"err_status":          "สถานะไม่ถูกต้อง",
		"err_generic":         "เกิดข้อผิดพลาด: %s",
		"stats_total":         "ทั้งหมด",
		"stats_available":     "พร้อมขาย",
		"stats_unavailable":   "หมด",
		"export_xlsx":         "ส่งออก Excel",
		"login_title":         "เข้าสู่ระบบผู้ดูแล",
		"password":            "รหัสผ่าน",
		"login":               "เข้าสู่ระบบ",
		"logout":              "ออกจากระบบ",
		"login_failed":        "รหัสผ่านไม่ถูกต้อง",
		"login_wait":          "ลองใหม่ได้ในอีก %d วินาที",
		"login_disabled":      "ยังไม่ได้ตั้งรหัสผ่านผู้ดูแล",
		"login_ok":            "เข้าสู่ระบบสำเร็จ",
		"diag_title":          "ทดสอบระบบ",
		"diag_connection":     "ทดสอบการเชื่อมต่อ",
		"diag_seed":           "สร้างข้อมูลตัวอย่าง",
		"diag_smoke":          "ทดสอบ API",
		"diag_connection_ok":  "เชื่อมต่อสำเร็จ! เอกสาร ID: %s",
		"diag_seed_ok":        "สร้างข้อมูลสำเร็จ! ร้านอาหาร ID: %s",
		"diag_smoke_ok":       "พบ %d หมวดหมู่ %d เมนู",
		"diag_failed":         "ล้มเหลว: %s",
		"bot_welcome":         "ยินดีต้อนรับสู่ %s\nกด /menu เพื่อดูเมนู หรือ /search <คำค้น>",
		"bot_search_usage":    "พิมพ์ /search ตามด้วยคำค้น",
		"bot_search_empty":    "ไม่พบเมนูที่ตรงกับ \"%s\"",
		"bot_search_header":   "ผลการค้นหา \"%s\":",
		"bot_no_restaurant":   "ยังไม่ได้ตั้งค่าร้านอาหาร",
		"bot_admin_login":     "กรุณาส่งรหัสผ่านผู้ดูแล",
		"bot_admin_menu":      "เมนูผู้ดูแล",
		"bot_admin_list":      "📋 รายการเมนู",
		"bot_admin_stats":     "📊 สถิติ",
		"bot_admin_seed":      "🌱 ข้อมูลตัวอย่าง",
		"bot_toggle":          "สลับสถานะ",
		"bot_deleted":         "ลบ \"%s\" แล้ว",
		"bot_toggled":         "\"%s\" เป็น %s แล้ว",
		"bot_stats":           "ทั้งหมด %d | พร้อมขาย %d | หมด %d",
		"bot_forbidden":       "ต้องเข้าสู่ระบบก่อน",
		"notify_item_created": "🆕 เพิ่มเมนูใหม่: %s",
		"notify_item_updated": "✏️ แก้ไขเมนู: %s",
		"notify_item_deleted": "🗑 ลบเมนู: %s",
		"notify_reordered":    "↕️ จัดลำดับใหม่ %d รายการ",
		"notify_generic":      "📣 %s",
	},
	En: {
		"app_title":           "Digital Menu",
		"menu_title":          "Menu",
		"menu_empty":          "No dishes yet",
		"page_of":             "Page %d of %d",
		"prev":                "◀ Prev",
		"next":                "Next ▶",
		"price":               "Price",
		"status_available":    "Available",
		"status_unavailable":  "Sold out",
		"status_deleted":      "Deleted",
		"admin_title":         "Menu management",
		"add_menu":            "Add dish",
		"edit_menu":           "Edit dish",
		"delete":              "Delete",
		"edit":                "Edit",
		"save":                "Save",
		"cancel":              "Cancel",
		"confirm_delete":      "Delete \"%s\"?",
		"confirm_yes":         "Yes, delete",
		"field_nameTh":        "Name (Thai)",
		"field_nameEn":        "Name (English)",
		"field_price":         "Price",
		"field_description":   "Description",
		"field_image":         "Image URL",
		"field_categoryId":    "Category",
		"field_status":        "Status",
		"choose_category":     "-- Choose a category --",
		"err_nameTh":          "Please enter a name",
		"err_categoryId":      "Please choose a category",
		"err_price":           "Price must be a non-negative number",
		"err_status":          "Invalid status",
		"err_generic":         "Something went wrong: %s",
		"stats_total":         "Total",
		"stats_available":     "Available",
		"stats_unavailable":   "Sold out",
		"export_xlsx":         "Export to Excel",
		"login_title":         "Admin login",
		"password":            "Password",
		"login":               "Log in",
		"logout":              "Log out",
		"login_failed":        "Wrong password",
		"login_wait":          "Try again in %d seconds",
		"login_disabled":      "No admin password is configured",
		"login_ok":            "Logged in",
		"diag_title":          "System check",
		"diag_connection":     "Test connection",
		"diag_seed":           "Create sample data",
		"diag_smoke":          "Test API",
		"diag_connection_ok":  "Connected! Document ID: %s",
		"diag_seed_ok":        "Sample data created! Restaurant ID: %s",
		"diag_smoke_ok":       "Found %d categories and %d dishes",
		"diag_failed":         "Failed: %s",
		"bot_welcome":         "Welcome to %s\nSend /menu to browse or /search <term>",
		"bot_search_usage":    "Send /search followed by a term",
		"bot_search_empty":    "Nothing matches \"%s\"",
		"bot_search_header":   "Results for \"%s\":",
		"bot_no_restaurant":   "No restaurant is configured",
		"bot_admin_login":     "Send the admin password",
		"bot_admin_menu":      "Admin menu",
		"bot_admin_list":      "📋 Dishes",
		"bot_admin_stats":     "📊 Stats",
		"bot_admin_seed":      "🌱 Sample data",
		"bot_toggle":          "Toggle status",
		"bot_deleted":         "Deleted \"%s\"",
		"bot_toggled":         "\"%s\" is now %s",
		"bot_stats":           "Total %d | Available %d | Sold out %d",
		"bot_forbidden":       "Please log in first",
		"notify_item_created": "🆕 New dish: %s",
		"notify_item_updated": "✏️ Dish updated: %s",
		"notify_item_deleted": "🗑 Dish deleted: %s",
		"notify_reordered":    "↕️ Reordered %d entries",
		"notify_generic":      "📣 %s",
	},
}
