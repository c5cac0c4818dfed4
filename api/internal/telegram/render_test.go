package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landmark-lens/api/internal/i18n"
	"landmark-lens/api/internal/recognition"
	"landmark-lens/api/internal/viewstate"
)

func textsOf(cs []tgbotapi.Chattable) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.(tgbotapi.MessageConfig).Text)
	}
	return out
}

var result = viewstate.Result{
	Landmark: recognition.LandmarkInfo{Name: "Monas", History: "Built 1961.", Sources: []recognition.Source{}},
	MimeType: "image/jpeg",
}

func TestRenderDiffNoChange(t *testing.T) {
	s := viewstate.Snapshot{State: result, Language: i18n.EN}
	assert.Empty(t, renderDiff(1, s, s))
}

func TestRenderDiffDirectionsFailure(t *testing.T) {
	prev := viewstate.Snapshot{State: result, Language: i18n.ID,
		Directions: viewstate.Directions{FormVisible: true, Loading: true, Origin: "Bogor"}}
	cur := prev
	cur.Directions.Loading = false

	got := textsOf(renderDiff(1, prev, cur))
	require.Len(t, got, 1)
	assert.Equal(t, "⚠️ "+i18n.For(i18n.ID).Error.Directions, got[0])
}

func TestRenderDiffClearIsSilent(t *testing.T) {
	info := &recognition.DirectionsInfo{Directions: "1. Go", MapURL: "not a url"}
	prev := viewstate.Snapshot{State: result, Language: i18n.EN,
		Directions: viewstate.Directions{Info: info, Origin: "A"}}
	cur := prev
	cur.Directions.Info = nil

	assert.Empty(t, renderDiff(1, prev, cur))
}

func TestDirectionsKeyboardSkipsBadURL(t *testing.T) {
	kb := directionsKeyboard(i18n.EN, "not a url")
	require.Len(t, kb.InlineKeyboard, 1)
	assert.Equal(t, cbDirClear, *kb.InlineKeyboard[0][0].CallbackData)
}

func TestRenderDiffFailureHasRetry(t *testing.T) {
	prev := viewstate.Snapshot{State: viewstate.Loading{Message: "x"}, Language: i18n.EN}
	cur := viewstate.Snapshot{State: viewstate.Failure{Message: "boom"}, Language: i18n.EN}

	out := renderDiff(1, prev, cur)
	require.Len(t, out, 1)
	m := out[0].(tgbotapi.MessageConfig)
	assert.Contains(t, m.Text, "boom")
	kb := m.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	assert.Equal(t, cbReset, *kb.InlineKeyboard[0][0].CallbackData)
}

func TestClip(t *testing.T) {
	long := make([]rune, maxText+10)
	for i := range long {
		long[i] = 'é'
	}
	got := []rune(clip(string(long)))
	assert.Len(t, got, maxText+1)
	assert.Equal(t, "short", clip("short"))
}
