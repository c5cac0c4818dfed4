package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"landmark-lens/api/internal/i18n"
	"landmark-lens/api/internal/recognition"
)

const helpText = `Send a photo of a landmark (or an image/RAW file) and I will tell you what it is.

/lang en|id  switch language
/engine [name]  show or switch the model backend
/history  your recent landmarks
/reset  start over`

const historyLimit = 10

func (r *Router) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	s := r.session(cid)
	args := strings.Fields(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		r.sendWelcome(s, true)
	case "help":
		r.sendText(cid, helpText)
	case "reset":
		s.ctrl.Reset()
	case "lang":
		if len(args) == 0 {
			m := tgbotapi.NewMessage(cid, "Language: "+s.ctrl.Language().String())
			m.ReplyMarkup = welcomeKeyboard(s.ctrl.Language())
			r.send(m)
			return
		}
		lang, err := i18n.Parse(args[0])
		if err != nil {
			r.sendText(cid, "Unknown language. Available: en | id")
			return
		}
		s.ctrl.SetLanguage(ctx, lang)
	case "engine":
		r.handleEngineCommand(cid, args)
	case "history":
		r.handleHistory(ctx, cid, s.ctrl.Language())
	default:
		r.sendText(cid, "Unknown command. /help")
	}
}

// handleEngineCommand shows or switches the chat's backend:
//
//	/engine
//	/engine gemini
//	/engine generativeai
func (r *Router) handleEngineCommand(chatID int64, args []string) {
	if len(args) == 0 {
		cur := r.EngManager.Get(chatID)
		r.sendText(chatID, fmt.Sprintf("Current engine: %s (%s)\nAvailable: %s",
			cur.Name(), cur.GetModel(), strings.Join(r.Engines.Names(), " | ")))
		return
	}
	cl, err := r.Engines.GetEngine(args[0])
	if err != nil {
		if errors.Is(err, recognition.ErrUnknownEngine) {
			r.sendText(chatID, "❌ "+err.Error())
			return
		}
		r.logger().Error("engine lookup failed", zap.Error(err))
		return
	}
	r.EngManager.Set(chatID, cl)
	r.sendText(chatID, fmt.Sprintf("✅ Engine: %s (%s)", cl.Name(), cl.GetModel()))
}

func (r *Router) handleHistory(ctx context.Context, chatID int64, lang i18n.Language) {
	t := i18n.For(lang)
	if r.History == nil {
		r.sendText(chatID, t.HistoryEmpty)
		return
	}
	rows, err := r.History.Recent(ctx, chatID, historyLimit)
	if err != nil {
		r.logger().Error("history query failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendText(chatID, t.HistoryEmpty)
		return
	}
	if len(rows) == 0 {
		r.sendText(chatID, t.HistoryEmpty)
		return
	}
	var b strings.Builder
	b.WriteString("🕘 ")
	b.WriteString(t.RecentTitle)
	for i, l := range rows {
		fmt.Fprintf(&b, "\n%d. %s (%s, %s)", i+1, l.Name, l.CreatedAt.Format("2006-01-02 15:04"), l.Language)
	}
	r.sendText(chatID, b.String())
}
