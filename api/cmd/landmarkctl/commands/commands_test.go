package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"landmark-lens/api/internal/config"
	"landmark-lens/api/internal/i18n"
	"landmark-lens/api/internal/recognition"
	"landmark-lens/api/internal/viewstate"
)

type fakeRec struct {
	landmarkErr error
	dirErr      error
}

func (f fakeRec) GetLandmarkInfo(_ context.Context, _ []byte, _ string, lang i18n.Language) (recognition.LandmarkInfo, error) {
	if f.landmarkErr != nil {
		return recognition.LandmarkInfo{}, f.landmarkErr
	}
	name := "Borobudur"
	if lang == i18n.ID {
		name = "Candi Borobudur"
	}
	return recognition.LandmarkInfo{
		Name:    name,
		History: "9th-century temple.",
		Sources: []recognition.Source{{Title: "UNESCO", URI: "https://whc.unesco.org/en/list/592"}},
	}, nil
}

func (f fakeRec) GetDirections(context.Context, string, string, i18n.Language) (recognition.DirectionsInfo, error) {
	if f.dirErr != nil {
		return recognition.DirectionsInfo{}, f.dirErr
	}
	return recognition.DirectionsInfo{Directions: "1. Drive to Magelang.", MapURL: "https://maps.google.com/?daddr=Borobudur"}, nil
}

var img = viewstate.File{Name: "temple.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}}

func TestRunIdentify(t *testing.T) {
	var out bytes.Buffer
	err := runIdentify(context.Background(), &out, fakeRec{}, zap.NewNop(), img,
		identifyOpts{from: "Yogyakarta", translate: "id"})
	require.NoError(t, err)

	s := out.String()
	en, id := i18n.For(i18n.EN), i18n.For(i18n.ID)
	assert.Contains(t, s, "[loading] "+en.Loading.Analyzing)
	assert.Contains(t, s, "[loading] "+en.Loading.GeneratingInfo)
	assert.Contains(t, s, "[result] "+en.Loading.Directions)
	assert.Contains(t, s, "[result] "+id.Loading.Translating)
	assert.Contains(t, s, "Candi Borobudur")
	assert.Contains(t, s, id.HistoryTitle+":")
	assert.Contains(t, s, "<https://whc.unesco.org/en/list/592>")
	assert.Contains(t, s, "1. Drive to Magelang.")
}

func TestRunIdentifyInvalidFile(t *testing.T) {
	err := runIdentify(context.Background(), io.Discard, fakeRec{}, zap.NewNop(),
		viewstate.File{Name: "notes.txt", ContentType: "text/plain"}, identifyOpts{lang: "id"})
	require.Error(t, err)
	assert.Equal(t, i18n.For(i18n.ID).Error.InvalidFile, err.Error())
}

func TestRunIdentifyFailures(t *testing.T) {
	err := runIdentify(context.Background(), io.Discard, fakeRec{landmarkErr: recognition.ErrRecognitionFailure},
		zap.NewNop(), img, identifyOpts{})
	require.Error(t, err)
	assert.Equal(t, i18n.For(i18n.EN).Error.Landmark, err.Error())

	var out bytes.Buffer
	err = runIdentify(context.Background(), &out, fakeRec{dirErr: errors.New("x")}, zap.NewNop(), img,
		identifyOpts{from: "Jakarta"})
	require.NoError(t, err, "directions failure is not fatal")
	assert.Contains(t, out.String(), "! "+i18n.For(i18n.EN).Error.Directions)
}

func TestRunIdentifyBadLanguage(t *testing.T) {
	err := runIdentify(context.Background(), io.Discard, fakeRec{}, zap.NewNop(), img, identifyOpts{translate: "fr"})
	assert.ErrorIs(t, err, i18n.ErrUnsupportedLanguage)
}

func TestRootRequiresCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	root := newRoot()
	root.SetArgs([]string{"directions", "--to", "Monas", "--from", "Bogor"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	err := root.Execute()
	assert.ErrorIs(t, err, config.ErrMissingCredential)
}
