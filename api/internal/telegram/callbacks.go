package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"landmark-lens/api/internal/i18n"
)

func (r *Router) handleCallback(ctx context.Context, cb tgbotapi.CallbackQuery) {
	if _, err := r.Bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil { // ack
		r.logger().Debug("callback ack failed", zap.Error(err))
	}
	if cb.Message == nil {
		return
	}
	s := r.session(cb.Message.Chat.ID)

	switch data := cb.Data; {
	case strings.HasPrefix(data, cbLangPrefix):
		lang, err := i18n.Parse(strings.TrimPrefix(data, cbLangPrefix))
		if err != nil {
			return
		}
		s.ctrl.SetLanguage(ctx, lang)
	case data == cbDirShow:
		s.ctrl.ShowDirectionsForm()
	case data == cbDirCancel:
		s.ctrl.HideDirectionsForm()
	case data == cbDirClear:
		s.ctrl.ClearDirections()
	case data == cbReset:
		s.ctrl.Reset()
	default:
		r.logger().Debug("unknown callback", zap.String("data", data))
	}
}
