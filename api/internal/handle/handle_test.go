package handle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landmark-lens/api/internal/i18n"
	"landmark-lens/api/internal/recognition"
)

type stubGen struct {
	reply recognition.Reply
	err   error

	mime     string
	deadline time.Duration
}

func (g *stubGen) Name() string     { return "gemini" }
func (g *stubGen) GetModel() string { return "stub" }

func (g *stubGen) GenerateLandmark(ctx context.Context, _ []byte, mime, _ string, _ bool) (recognition.Reply, error) {
	g.mime = mime
	if dl, ok := ctx.Deadline(); ok {
		g.deadline = time.Until(dl)
	}
	return g.reply, g.err
}

func (g *stubGen) GenerateDirections(context.Context, string) (recognition.Reply, error) {
	return g.reply, g.err
}

func newRouter(gen *stubGen) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engs := recognition.NewEngines("gemini", recognition.New(gen, nil))
	r := gin.New()
	New(engs, 90*time.Second, nil).Register(r)
	return r
}

func post(r http.Handler, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	js, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(js))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

const jpegB64 = "/9j/4AAQ"

func TestLandmarkOK(t *testing.T) {
	gen := &stubGen{reply: recognition.Reply{
		Text:      "NAME: Monas\nHISTORY: National Monument.",
		Citations: []recognition.Citation{{Title: "Wiki", URI: "https://id.wikipedia.org/wiki/Monumen_Nasional"}},
	}}
	r := newRouter(gen)

	w := post(r, "/v1/landmark", LandmarkRequest{ImageB64: "data:image/jpeg;base64," + jpegB64, Language: "id"},
		map[string]string{"X-Request-Timeout": "5"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var info recognition.LandmarkInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "Monas", info.Name)
	assert.Len(t, info.Sources, 1)
	assert.Equal(t, "image/jpeg", gen.mime)
	assert.LessOrEqual(t, gen.deadline, 5*time.Second)
	assert.Greater(t, gen.deadline, time.Duration(0))
}

func TestLandmarkRawFilenameFallsBackToJPEG(t *testing.T) {
	gen := &stubGen{reply: recognition.Reply{Text: "NAME: X\nHISTORY: Y"}}
	r := newRouter(gen)

	w := post(r, "/v1/landmark", LandmarkRequest{ImageB64: "cmF3", MimeType: "application/octet-stream", Filename: "a.ARW"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", gen.mime)
}

func TestLandmarkInvalidFile(t *testing.T) {
	gen := &stubGen{}
	r := newRouter(gen)

	w := post(r, "/v1/landmark", LandmarkRequest{ImageB64: "aGVsbG8=", MimeType: "text/plain", Filename: "a.txt", Language: "id"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	e := decodeError(t, w)
	assert.Equal(t, "invalid_file", e.Error)
	assert.Equal(t, i18n.For(i18n.ID).Error.InvalidFile, e.Message)
	assert.Empty(t, gen.mime, "no model call")
}

func TestLandmarkFailureIsOpaque(t *testing.T) {
	r := newRouter(&stubGen{err: errors.New("quota exceeded for project 123")})

	w := post(r, "/v1/landmark", LandmarkRequest{ImageB64: jpegB64}, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	e := decodeError(t, w)
	assert.Equal(t, "landmark_failure", e.Error)
	assert.NotContains(t, w.Body.String(), "quota")
}

func TestLandmarkBadRequests(t *testing.T) {
	r := newRouter(&stubGen{})
	cases := map[string]struct {
		body any
		kind string
	}{
		"bad base64": {LandmarkRequest{ImageB64: "%%%"}, "bad_image_b64"},
		"language":   {LandmarkRequest{ImageB64: jpegB64, Language: "fr"}, "unsupported_language"},
		"engine":     {LandmarkRequest{ImageB64: jpegB64, LLMName: "gpt"}, "unknown_engine"},
		"json":       {"not an object", "bad_json"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := post(r, "/v1/landmark", tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.kind, decodeError(t, w).Error)
		})
	}
}

func TestDirections(t *testing.T) {
	r := newRouter(&stubGen{reply: recognition.Reply{Text: "DIRECTIONS:\n1. North.\n2. East.\n\nMAP_URL: https://maps.app/x"}})

	w := post(r, "/v1/directions", DirectionsRequest{Destination: "Monas", Origin: "Bogor"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var d recognition.DirectionsInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, recognition.DirectionsInfo{Directions: "1. North.\n2. East.", MapURL: "https://maps.app/x"}, d)
}

func TestDirectionsErrors(t *testing.T) {
	w := post(newRouter(&stubGen{}), "/v1/directions", DirectionsRequest{Destination: "Monas", Origin: " "}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(newRouter(&stubGen{reply: recognition.Reply{Text: "no markers"}}), "/v1/directions",
		DirectionsRequest{Destination: "Monas", Origin: "Bogor"}, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, i18n.For(i18n.EN).Error.Directions, decodeError(t, w).Message)
}
