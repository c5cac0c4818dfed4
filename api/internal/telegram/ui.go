package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"landmark-lens/api/internal/i18n"
	"landmark-lens/api/internal/recognition"
)

// Callback data.
const (
	cbLangPrefix = "lang:"
	cbDirShow    = "dir_show"
	cbDirCancel  = "dir_cancel"
	cbDirClear   = "dir_clear"
	cbReset      = "reset"
)

const maxText = 3900

var flags = map[i18n.Language]string{
	i18n.EN: "🇬🇧 EN",
	i18n.ID: "🇮🇩 ID",
}

func languageRow(cur i18n.Language) []tgbotapi.InlineKeyboardButton {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(flags))
	for _, l := range i18n.Languages() {
		label := flags[l]
		if l == cur {
			label = "• " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, cbLangPrefix+string(l)))
	}
	return row
}

func welcomeKeyboard(lang i18n.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(languageRow(lang))
}

func resultKeyboard(lang i18n.Language) tgbotapi.InlineKeyboardMarkup {
	t := i18n.For(lang)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🧭 "+t.GetDirectionsButton, cbDirShow)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(t.AnalyzeAnotherButton, cbReset)),
		languageRow(lang),
	)
}

func errorKeyboard(lang i18n.Language) tgbotapi.InlineKeyboardMarkup {
	t := i18n.For(lang)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(t.TryAgainButton, cbReset)),
		languageRow(lang),
	)
}

func formKeyboard(lang i18n.Language) tgbotapi.InlineKeyboardMarkup {
	t := i18n.For(lang)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(t.CancelButton, cbDirCancel)),
	)
}

func directionsKeyboard(lang i18n.Language, mapURL string) tgbotapi.InlineKeyboardMarkup {
	t := i18n.For(lang)
	var rows [][]tgbotapi.InlineKeyboardButton
	if strings.HasPrefix(mapURL, "http://") || strings.HasPrefix(mapURL, "https://") {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("🗺 "+t.OpenInMapsButton, mapURL)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(t.ClearDirectionsButton, cbDirClear)))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func welcomeText(lang i18n.Language) string {
	t := i18n.For(lang)
	return fmt.Sprintf("%s\n%s\n\n📷 %s", t.Title, t.Subtitle, t.UploadButton)
}

func formatLandmark(lang i18n.Language, info recognition.LandmarkInfo) string {
	t := i18n.For(lang)
	var b strings.Builder
	b.WriteString("🏛 ")
	b.WriteString(info.Name)
	b.WriteString("\n\n")
	b.WriteString(t.HistoryTitle)
	b.WriteString("\n")
	b.WriteString(info.History)
	if len(info.Sources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(t.SourcesTitle)
		for _, s := range info.Sources {
			fmt.Fprintf(&b, "\n• %s\n  %s", s.Title, s.URI)
		}
	}
	return b.String()
}

func formatDirections(lang i18n.Language, d recognition.DirectionsInfo) string {
	return i18n.For(lang).DirectionsTitle + "\n\n" + d.Directions
}

func formatError(lang i18n.Language, msg string) string {
	return "⚠️ " + i18n.For(lang).Error.Title + "\n\n" + msg
}

func clip(s string) string {
	r := []rune(s)
	if len(r) > maxText {
		return string(r[:maxText]) + "…"
	}
	return s
}
