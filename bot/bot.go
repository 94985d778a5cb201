package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"flip-menu/config"
	"flip-menu/lang"
	"flip-menu/models"
	"flip-menu/services"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// menuSession is the menu message a chat is flipping through. Items are
// reloaded on every page button so admin edits show up mid-browse.
type menuSession struct {
	messageID int
	lang      string
	title     string
	currency  string
	flipper   *services.Flipper

	mu    sync.Mutex
	items []models.MenuItem
}

func (s *menuSession) snapshot() []models.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

// setItems swaps in a fresh item list and reports whether the page count
// changed. The flipper clamps its page when the menu shrank.
func (s *menuSession) setItems(items []models.MenuItem) bool {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	total := services.TotalPages(len(items), services.ItemsPerPage)
	if total == s.flipper.Total() {
		return false
	}
	s.flipper.SetTotal(total)
	return true
}

// Bot is the customer menu bot (TOKEN).
type Bot struct {
	api          *tgbotapi.BotAPI
	restaurantID string

	sessions   map[int64]*menuSession
	sessionsMu sync.Mutex
}

func New(cfg *config.Config) (*Bot, error) {
	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("TOKEN not set")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:          api,
		restaurantID: cfg.RestaurantID,
		sessions:     make(map[int64]*menuSession),
	}, nil
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "เริ่มต้น / Start"},
		tgbotapi.BotCommand{Command: "menu", Description: "เมนู / Menu"},
		tgbotapi.BotCommand{Command: "search", Description: "ค้นหา / Search"},
	)
	_, err := b.api.Request(cfg)
	return err
}

// Start blocks reading updates until ctx is done.
func (b *Bot) Start(ctx context.Context) {
	if err := b.setBotCommands(); err != nil {
		log.Printf("menu bot: set commands: %v", err)
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.CallbackQuery != nil {
			b.handleCallback(ctx, update.CallbackQuery)
			continue
		}
		if update.Message == nil || update.Message.From == nil {
			continue
		}
		msg := update.Message
		l := lang.Negotiate(msg.From.LanguageCode)
		text := strings.TrimSpace(msg.Text)

		switch {
		case text == "/start":
			b.handleStart(ctx, msg.Chat.ID, l)
		case text == "/menu":
			b.sendMenu(ctx, msg.Chat.ID, l)
		case strings.HasPrefix(text, "/search"):
			b.handleSearch(ctx, msg.Chat.ID, l, strings.TrimSpace(strings.TrimPrefix(text, "/search")))
		default:
			b.handleStart(ctx, msg.Chat.ID, l)
		}
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

func (b *Bot) sendWithInline(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	sent, err := b.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// restaurant returns the display title and currency.
func (b *Bot) restaurant(ctx context.Context, l string) (string, string, bool) {
	r, err := services.GetRestaurant(ctx, b.restaurantID).Unwrap()
	if err != nil {
		return "", "", false
	}
	currency := r.Settings.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	return lang.Name(l, r.Name, r.NameEn), currency, true
}

func (b *Bot) handleStart(ctx context.Context, chatID int64, l string) {
	title, _, ok := b.restaurant(ctx, l)
	if !ok {
		b.send(chatID, lang.T(l, "bot_no_restaurant"))
		return
	}
	b.send(chatID, lang.T(l, "bot_welcome", title))
}

// sendMenu posts page one and opens a fresh flip session for the chat.
func (b *Bot) sendMenu(ctx context.Context, chatID int64, l string) {
	s, err := b.loadSession(ctx, chatID, l)
	if err != nil {
		b.send(chatID, lang.T(l, "err_generic", err.Error()))
		return
	}
	text := pageText(l, s.title, s.items, 0, s.currency)
	kb, ok := pagerKeyboard(l, 0, s.flipper.Total())
	if !ok {
		b.send(chatID, text)
		return
	}
	id, err := b.sendWithInline(chatID, text, kb)
	if err != nil {
		log.Printf("send error: %v", err)
		return
	}
	s.messageID = id
	b.sessionsMu.Lock()
	b.sessions[chatID] = s
	b.sessionsMu.Unlock()
}

func (b *Bot) loadSession(ctx context.Context, chatID int64, l string) (*menuSession, error) {
	title, currency, ok := b.restaurant(ctx, l)
	if !ok {
		return nil, fmt.Errorf("%s", lang.T(l, "bot_no_restaurant"))
	}
	groups, err := services.GetMenusWithCategories(ctx, b.restaurantID).Unwrap()
	if err != nil {
		return nil, err
	}
	items := services.Flatten(groups)
	s := &menuSession{
		lang:     l,
		title:    title,
		currency: currency,
		items:    items,
		flipper:  services.NewFlipper(services.TotalPages(len(items), services.ItemsPerPage), services.FlipDelay),
	}
	s.flipper.OnSettled = func(page int) { b.renderPage(chatID, s, page) }
	return s, nil
}

// renderPage edits the menu message in place once a flip settles.
func (b *Bot) renderPage(chatID int64, s *menuSession, page int) {
	text := pageText(s.lang, s.title, s.snapshot(), page, s.currency)
	var edit tgbotapi.EditMessageTextConfig
	if kb, ok := pagerKeyboard(s.lang, page, s.flipper.Total()); ok {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, s.messageID, text, kb)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, s.messageID, text)
	}
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("menu bot: edit page %d: %v", page, err)
	}
}

func (b *Bot) handleSearch(ctx context.Context, chatID int64, l, term string) {
	if term == "" {
		b.send(chatID, lang.T(l, "bot_search_usage"))
		return
	}
	_, currency, ok := b.restaurant(ctx, l)
	if !ok {
		b.send(chatID, lang.T(l, "bot_no_restaurant"))
		return
	}
	items, err := services.SearchMenus(ctx, b.restaurantID, term).Unwrap()
	if err != nil {
		b.send(chatID, lang.T(l, "err_generic", err.Error()))
		return
	}
	b.send(chatID, searchText(l, term, items, currency))
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	b.api.Request(tgbotapi.NewCallback(cq.ID, ""))

	page, ok := parsePage(cq.Data)
	if !ok {
		return
	}
	chatID := cq.Message.Chat.ID

	b.sessionsMu.Lock()
	s := b.sessions[chatID]
	b.sessionsMu.Unlock()
	if s == nil || s.messageID != cq.Message.MessageID {
		// Buttons on a message from before a restart or an older /menu.
		var err error
		s, err = b.loadSession(ctx, chatID, lang.Negotiate(cq.From.LanguageCode))
		if err != nil {
			log.Printf("menu bot: reload: %v", err)
			return
		}
		s.messageID = cq.Message.MessageID
		b.sessionsMu.Lock()
		b.sessions[chatID] = s
		b.sessionsMu.Unlock()
		if page == 0 {
			b.renderPage(chatID, s, 0)
			return
		}
	} else if groups, err := services.GetMenusWithCategories(ctx, b.restaurantID).Unwrap(); err != nil {
		log.Printf("menu bot: refresh: %v", err)
	} else if s.setItems(services.Flatten(groups)) {
		if !s.flipper.FlipTo(page) {
			// The target fell off a shorter menu; redraw the clamped page.
			b.renderPage(chatID, s, s.flipper.Page())
		}
		return
	}
	s.flipper.FlipTo(page)
}
