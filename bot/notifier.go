package bot

import (
	"context"
	"log"

	"flip-menu/events"
	"flip-menu/lang"
	"flip-menu/services"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts menu changes to the admin chat. It can sit directly
// behind services.Events or consume the RabbitMQ exchange via Handle.
type Notifier struct {
	api    sender
	chatID int64
	lang   string
}

func NewNotifier(api *tgbotapi.BotAPI, chatID int64, l string) *Notifier {
	if !lang.Valid(l) {
		l = lang.Th
	}
	return &Notifier{api: api, chatID: chatID, lang: l}
}

// Publish sends in the background so store writes never wait on Telegram.
func (n *Notifier) Publish(_ context.Context, e events.Event) error {
	go n.Handle(e)
	return nil
}

func (n *Notifier) Handle(e events.Event) {
	if _, err := n.api.Send(tgbotapi.NewMessage(n.chatID, n.text(e))); err != nil {
		log.Printf("notifier: send %s: %v", e.RoutingKey(), err)
	}
}

func (n *Notifier) text(e events.Event) string {
	name := ""
	if e.Kind == events.KindItem && e.ID != "" {
		if m, err := services.GetMenuByID(context.Background(), e.ID).Unwrap(); err == nil {
			name = lang.Name(n.lang, m.NameTh, m.NameEn)
		}
	}
	return notificationText(n.lang, e, name)
}
