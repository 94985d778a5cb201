package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"flip-menu/config"
	"flip-menu/docstore"
	"flip-menu/lang"
	"flip-menu/services"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AdderBot is the admin bot (ADDER_TOKEN). Admins log in with the same
// password as the web panel; failures share the cooldown rules.
type AdderBot struct {
	api          *tgbotapi.BotAPI
	passwordHash string
	restaurantID string

	loggedIn   map[int64]bool
	loggedInMu sync.RWMutex
}

func NewAdderBot(cfg *config.Config) (*AdderBot, error) {
	if cfg.Telegram.AdderToken == "" {
		return nil, fmt.Errorf("ADDER_TOKEN not set")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.AdderToken)
	if err != nil {
		return nil, err
	}
	return &AdderBot{
		api:          api,
		passwordHash: cfg.Admin.PasswordHash,
		restaurantID: cfg.RestaurantID,
		loggedIn:     make(map[int64]bool),
	}, nil
}

// API exposes the admin bot connection so notifications go out through it.
func (a *AdderBot) API() *tgbotapi.BotAPI { return a.api }

func (a *AdderBot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := a.api.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		a.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.CallbackQuery != nil {
			a.handleCallback(ctx, update.CallbackQuery)
			continue
		}
		if update.Message == nil || update.Message.From == nil {
			continue
		}
		msg := update.Message
		userID := msg.From.ID
		l := lang.Negotiate(msg.From.LanguageCode)
		text := strings.TrimSpace(msg.Text)

		switch {
		case text == "/start":
			a.handleStart(msg.Chat.ID, userID, l)
		case text == "/logout":
			a.clearLoggedIn(userID)
			a.send(msg.Chat.ID, lang.T(l, "bot_admin_login"))
		case !a.isLoggedIn(userID):
			a.handleLogin(ctx, msg, l)
		default:
			a.sendAdminPanel(msg.Chat.ID, l)
		}
	}
}

func (a *AdderBot) isLoggedIn(userID int64) bool {
	a.loggedInMu.RLock()
	ok := a.loggedIn[userID]
	a.loggedInMu.RUnlock()
	return ok
}

func (a *AdderBot) setLoggedIn(userID int64) {
	a.loggedInMu.Lock()
	a.loggedIn[userID] = true
	a.loggedInMu.Unlock()
}

func (a *AdderBot) clearLoggedIn(userID int64) {
	a.loggedInMu.Lock()
	delete(a.loggedIn, userID)
	a.loggedInMu.Unlock()
}

func (a *AdderBot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := a.api.Send(msg); err != nil {
		log.Printf("adder send error: %v", err)
	}
}

func (a *AdderBot) sendWithInline(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := a.api.Send(msg); err != nil {
		log.Printf("adder send error: %v", err)
	}
}

func (a *AdderBot) handleStart(chatID, userID int64, l string) {
	if a.isLoggedIn(userID) {
		a.sendAdminPanel(chatID, l)
		return
	}
	if a.passwordHash == "" {
		a.send(chatID, lang.T(l, "login_disabled"))
		return
	}
	a.send(chatID, lang.T(l, "bot_admin_login"))
}

// handleLogin treats the message as a password attempt. The message is
// removed from the chat whatever the outcome.
func (a *AdderBot) handleLogin(ctx context.Context, msg *tgbotapi.Message, l string) {
	chatID, userID := msg.Chat.ID, msg.From.ID
	if a.passwordHash == "" {
		a.send(chatID, lang.T(l, "login_disabled"))
		return
	}
	if _, err := a.api.Request(tgbotapi.NewDeleteMessage(chatID, msg.MessageID)); err != nil {
		log.Printf("adder: delete password message: %v", err)
	}

	client := strconv.FormatInt(userID, 10)
	wait, err := services.LoginThrottleWaitSeconds(ctx, services.ThrottleSurfaceBot, client)
	if err != nil {
		log.Printf("adder: login throttle: %v", err)
	}
	if wait > 0 {
		a.send(chatID, lang.T(l, "login_wait", wait))
		return
	}

	ok, err := services.CheckAdminPassword(a.passwordHash, strings.TrimSpace(msg.Text))
	if err != nil {
		log.Printf("adder: check password: %v", err)
	}
	if !ok {
		if err := services.RecordLoginFailed(ctx, services.ThrottleSurfaceBot, client); err != nil {
			log.Printf("adder: record failed login: %v", err)
		}
		a.send(chatID, lang.T(l, "login_failed"))
		return
	}
	if err := services.RecordLoginSuccess(ctx, services.ThrottleSurfaceBot, client); err != nil {
		log.Printf("adder: record login: %v", err)
	}
	a.setLoggedIn(userID)
	a.send(chatID, lang.T(l, "login_ok"))
	a.sendAdminPanel(chatID, l)
}

func (a *AdderBot) sendAdminPanel(chatID int64, l string) {
	a.sendWithInline(chatID, lang.T(l, "bot_admin_menu"), adminPanelKeyboard(l))
}

func (a *AdderBot) sendList(ctx context.Context, chatID int64, l string) {
	groups, err := services.GetAllMenusWithCategories(ctx, a.restaurantID).Unwrap()
	if err != nil {
		a.send(chatID, lang.T(l, "err_generic", err.Error()))
		return
	}
	a.sendWithInline(chatID, adminListText(l, groups), adminListKeyboard(l, groups))
}

func (a *AdderBot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	l := lang.Negotiate(cq.From.LanguageCode)
	data := cq.Data

	a.api.Request(tgbotapi.NewCallback(cq.ID, ""))

	if !a.isLoggedIn(cq.From.ID) {
		a.send(chatID, lang.T(l, "bot_forbidden"))
		return
	}

	switch {
	case data == cbBack:
		a.sendAdminPanel(chatID, l)
	case data == cbList:
		a.sendList(ctx, chatID, l)
	case data == cbStats:
		st, err := services.GetMenuStats(ctx, a.restaurantID).Unwrap()
		if err != nil {
			a.send(chatID, lang.T(l, "err_generic", err.Error()))
			return
		}
		a.sendWithInline(chatID, statsText(l, st), adminPanelKeyboard(l))
	case data == cbSeed:
		id, err := services.SeedSampleData(ctx).Unwrap()
		if err != nil {
			a.send(chatID, lang.T(l, "diag_failed", err.Error()))
			return
		}
		a.send(chatID, lang.T(l, "diag_seed_ok", string(id)))
	case strings.HasPrefix(data, cbToggle):
		a.toggle(ctx, chatID, l, strings.TrimPrefix(data, cbToggle))
	case strings.HasPrefix(data, cbDelete):
		id := strings.TrimPrefix(data, cbDelete)
		item, err := services.GetMenuByID(ctx, id).Unwrap()
		if err != nil {
			a.send(chatID, lang.T(l, "err_generic", err.Error()))
			return
		}
		a.sendWithInline(chatID, lang.T(l, "confirm_delete", lang.Name(l, item.NameTh, item.NameEn)), confirmDeleteKeyboard(l, id))
	case strings.HasPrefix(data, cbDelOK):
		id := strings.TrimPrefix(data, cbDelOK)
		item, err := services.GetMenuByID(ctx, id).Unwrap()
		if err == nil {
			err = services.DeleteMenu(ctx, id).Err()
		}
		if err != nil {
			a.send(chatID, lang.T(l, "err_generic", err.Error()))
			return
		}
		a.send(chatID, lang.T(l, "bot_deleted", lang.Name(l, item.NameTh, item.NameEn)))
		a.sendList(ctx, chatID, l)
	}
}

func (a *AdderBot) toggle(ctx context.Context, chatID int64, l, id string) {
	item, err := services.GetMenuByID(ctx, id).Unwrap()
	if err != nil {
		a.send(chatID, lang.T(l, "err_generic", err.Error()))
		return
	}
	next := toggled(item.Status)
	if err := services.UpdateMenu(ctx, id, docstore.Doc{"status": string(next)}).Err(); err != nil {
		a.send(chatID, lang.T(l, "err_generic", err.Error()))
		return
	}
	a.send(chatID, lang.T(l, "bot_toggled", lang.Name(l, item.NameTh, item.NameEn), statusLabel(l, next)))
}
