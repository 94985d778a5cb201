package bot

import (
	"fmt"
	"strconv"
	"strings"

	"flip-menu/events"
	"flip-menu/lang"
	"flip-menu/models"
	"flip-menu/services"
	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const defaultCurrency = "THB"

func itemLine(l string, m models.MenuItem, currency string) string {
	return fmt.Sprintf("• %s — %s %s", lang.Name(l, m.NameTh, m.NameEn), humanize.Commaf(m.Price), currency)
}

// pageText renders one page of the flattened menu. page is 0-based.
func pageText(l, title string, items []models.MenuItem, page int, currency string) string {
	total := services.TotalPages(len(items), services.ItemsPerPage)
	if total == 0 {
		return title + "\n\n" + lang.T(l, "menu_empty")
	}
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n")
	for _, m := range services.Paginate(items, page, services.ItemsPerPage) {
		sb.WriteString(itemLine(l, m, currency))
		if m.Description != "" {
			sb.WriteString("\n   ")
			sb.WriteString(m.Description)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(lang.T(l, "page_of", page+1, total))
	return sb.String()
}

// pagerKeyboard has a prev button unless on the first page and a next
// button unless on the last. Single-page menus get no keyboard.
func pagerKeyboard(l string, page, total int) (tgbotapi.InlineKeyboardMarkup, bool) {
	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(lang.T(l, "prev"), "page:"+strconv.Itoa(page-1)))
	}
	if page < total-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(lang.T(l, "next"), "page:"+strconv.Itoa(page+1)))
	}
	if len(row) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(row), true
}

func parsePage(data string) (int, bool) {
	s, ok := strings.CutPrefix(data, "page:")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func searchText(l, term string, items []models.MenuItem, currency string) string {
	if len(items) == 0 {
		return lang.T(l, "bot_search_empty", term)
	}
	var sb strings.Builder
	sb.WriteString(lang.T(l, "bot_search_header", term))
	for _, m := range items {
		sb.WriteString("\n")
		sb.WriteString(itemLine(l, m, currency))
	}
	return sb.String()
}

func statusLabel(l string, s models.Status) string {
	return lang.T(l, "status_"+string(s))
}

// adminListText groups the admin tree by category.
func adminListText(l string, groups []services.CategoryWithMenus) string {
	var sb strings.Builder
	sb.WriteString(lang.T(l, "bot_admin_list"))
	n := 0
	for _, g := range groups {
		sb.WriteString("\n\n")
		sb.WriteString(lang.Name(l, g.Name, g.NameEn))
		for _, m := range g.Menus {
			fmt.Fprintf(&sb, "\n• %s — %s (%s)", lang.Name(l, m.NameTh, m.NameEn), humanize.Commaf(m.Price), statusLabel(l, m.DisplayStatus()))
			n++
		}
	}
	if n == 0 {
		sb.WriteString("\n\n")
		sb.WriteString(lang.T(l, "menu_empty"))
	}
	return sb.String()
}

// Callback data stays under Telegram's 64 byte limit for uuid and
// Firestore ids.
const (
	cbList   = "adm:list"
	cbStats  = "adm:stats"
	cbSeed   = "adm:seed"
	cbBack   = "adm:back"
	cbToggle = "adm:toggle:"
	cbDelete = "adm:del:"
	cbDelOK  = "adm:delok:"
)

func adminPanelKeyboard(l string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(lang.T(l, "bot_admin_list"), cbList),
			tgbotapi.NewInlineKeyboardButtonData(lang.T(l, "bot_admin_stats"), cbStats),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(lang.T(l, "bot_admin_seed"), cbSeed),
		),
	)
}

// adminListKeyboard has one row per item: toggle on the left, delete on
// the right.
func adminListKeyboard(l string, groups []services.CategoryWithMenus) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, g := range groups {
		for _, m := range g.Menus {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔁 "+lang.Name(l, m.NameTh, m.NameEn), cbToggle+m.ID),
				tgbotapi.NewInlineKeyboardButtonData("🗑 "+lang.T(l, "delete"), cbDelete+m.ID),
			))
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« "+lang.T(l, "bot_admin_menu"), cbBack),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmDeleteKeyboard(l, id string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(lang.T(l, "confirm_yes"), cbDelOK+id),
		tgbotapi.NewInlineKeyboardButtonData(lang.T(l, "cancel"), cbList),
	))
}

func statsText(l string, st services.MenuStats) string {
	return lang.T(l, "bot_stats", st.Total, st.Available, st.Unavailable)
}

// toggled flips availability.
func toggled(s models.Status) models.Status {
	if s == models.StatusAvailable {
		return models.StatusUnavailable
	}
	return models.StatusAvailable
}

// notificationText describes e for the admin chat. name is the item name
// when known.
func notificationText(l string, e events.Event, name string) string {
	if name == "" {
		name = e.ID
	}
	switch {
	case e.Action == events.ActionReordered:
		return lang.T(l, "notify_reordered", len(e.IDs))
	case e.Kind == events.KindItem && e.Action == events.ActionCreated:
		return lang.T(l, "notify_item_created", name)
	case e.Kind == events.KindItem && e.Action == events.ActionUpdated:
		return lang.T(l, "notify_item_updated", name)
	case e.Kind == events.KindItem && e.Action == events.ActionDeleted:
		return lang.T(l, "notify_item_deleted", name)
	}
	return lang.T(l, "notify_generic", e.RoutingKey()+" "+e.ID)
}
