package telegram

import (
	"reflect"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"landmark-lens/api/internal/i18n"
	"landmark-lens/api/internal/viewstate"
)

// render is the controller observer for one chat.
func (r *Router) render(s *session, snap viewstate.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.prev
	s.prev = snap
	for _, m := range renderDiff(s.chatID, prev, snap) {
		r.send(m)
	}
}

// renderDiff turns one snapshot change into the messages to send.
func renderDiff(chatID int64, prev, cur viewstate.Snapshot) []tgbotapi.Chattable {
	var out []tgbotapi.Chattable
	lang := cur.Language
	t := i18n.For(lang)

	if !reflect.DeepEqual(prev.State, cur.State) {
		switch st := cur.State.(type) {
		case viewstate.Initial:
			out = append(out, welcome(chatID, lang))
		case viewstate.Loading:
			out = append(out, tgbotapi.NewMessage(chatID, "⏳ "+st.Message))
		case viewstate.Result:
			m := tgbotapi.NewMessage(chatID, clip(formatLandmark(lang, st.Landmark)))
			m.ReplyMarkup = resultKeyboard(lang)
			out = append(out, m)
		case viewstate.Failure:
			m := tgbotapi.NewMessage(chatID, formatError(lang, st.Message))
			m.ReplyMarkup = errorKeyboard(lang)
			out = append(out, m)
		}
	} else if prev.Language != cur.Language && cur.State.Phase() == viewstate.PhaseInitial {
		out = append(out, welcome(chatID, lang))
	}

	if !prev.Translating && cur.Translating {
		out = append(out, tgbotapi.NewMessage(chatID, "⏳ "+t.Loading.Translating))
	}

	if cur.State.Phase() != viewstate.PhaseResult {
		return out
	}
	pd, cd := prev.Directions, cur.Directions
	if !pd.FormVisible && cd.FormVisible {
		m := tgbotapi.NewMessage(chatID, t.DirectionsFormTitle+"\n"+t.FullAddressLabel+"\n"+t.FullAddressPlaceholder)
		m.ReplyMarkup = formKeyboard(lang)
		out = append(out, m)
	}
	if !pd.Loading && cd.Loading {
		out = append(out, tgbotapi.NewMessage(chatID, "⏳ "+t.Loading.Directions))
	}
	if cd.Info != nil && (pd.Info == nil || *pd.Info != *cd.Info) {
		m := tgbotapi.NewMessage(chatID, clip(formatDirections(lang, *cd.Info)))
		m.ReplyMarkup = directionsKeyboard(lang, cd.Info.MapURL)
		out = append(out, m)
	}
	if pd.Loading && !cd.Loading && cd.Info == nil && cd.FormVisible {
		out = append(out, tgbotapi.NewMessage(chatID, "⚠️ "+t.Error.Directions))
	}
	return out
}

func welcome(chatID int64, lang i18n.Language) tgbotapi.MessageConfig {
	m := tgbotapi.NewMessage(chatID, welcomeText(lang))
	m.ReplyMarkup = welcomeKeyboard(lang)
	return m
}

func (r *Router) sendWelcome(s *session, force bool) {
	snap := s.ctrl.Snapshot()
	if !force && snap.State.Phase() != viewstate.PhaseInitial {
		r.sendText(s.chatID, i18n.For(snap.Language).Subtitle)
		return
	}
	r.send(welcome(s.chatID, snap.Language))
}
