// Package telegram is the chat front end. Each chat owns a view-state
// controller whose snapshots are rendered back as messages.
package telegram

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"landmark-lens/api/internal/i18n"
	"landmark-lens/api/internal/recognition"
	"landmark-lens/api/internal/store"
)

// Sender is the part of *tgbotapi.BotAPI the router uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// History is the optional lookup log behind /history.
type History interface {
	Record(ctx context.Context, l *store.Lookup) error
	Recent(ctx context.Context, chatID int64, limit int) ([]store.Lookup, error)
}

type Router struct {
	Bot        Sender
	Engines    *recognition.Engines
	EngManager *recognition.Manager
	History    History

	Lang    i18n.Language // language of new chats
	Timeout time.Duration // bound on one update, 0 means none
	Log     *zap.Logger
	HTTP    *http.Client

	sessions sync.Map // chatID -> *session
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	if upd.CallbackQuery != nil {
		r.handleCallback(ctx, *upd.CallbackQuery)
		return
	}
	msg := upd.Message
	if msg == nil {
		return
	}

	switch {
	case msg.IsCommand():
		r.handleCommand(ctx, msg)
	case len(msg.Photo) > 0:
		r.acceptPhoto(ctx, msg)
	case msg.Document != nil:
		r.acceptDocument(ctx, msg)
	case strings.TrimSpace(msg.Text) != "":
		r.handleText(ctx, msg)
	}
}

// handleText submits the origin address while the directions form is open.
func (r *Router) handleText(ctx context.Context, msg *tgbotapi.Message) {
	s := r.session(msg.Chat.ID)
	if s.ctrl.Directions().FormVisible {
		s.ctrl.SubmitDirections(ctx, msg.Text)
		return
	}
	r.sendWelcome(s, false)
}

func (r *Router) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

func (r *Router) send(c tgbotapi.Chattable) {
	if _, err := r.Bot.Send(c); err != nil {
		r.logger().Warn("telegram send failed", zap.Error(err))
	}
}

func (r *Router) sendText(chatID int64, text string) {
	r.send(tgbotapi.NewMessage(chatID, clip(text)))
}
