// Package handle exposes the recognition client over JSON HTTP.
package handle

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"landmark-lens/api/internal/i18n"
	"landmark-lens/api/internal/recognition"
)

// maxBody bounds request bodies; images arrive base64 encoded.
const maxBody = 32 << 20

type Handle struct {
	engs    *recognition.Engines
	timeout time.Duration
	log     *zap.Logger
}

func New(engs *recognition.Engines, timeout time.Duration, log *zap.Logger) *Handle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handle{engs: engs, timeout: timeout, log: log.Named("handle")}
}

// Register mounts the API routes on r.
func (h *Handle) Register(r gin.IRoutes) {
	r.POST("/v1/landmark", h.Landmark)
	r.POST("/v1/directions", h.Directions)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func abort(c *gin.Context, code int, kind, msg string) {
	c.AbortWithStatusJSON(code, errorBody{Error: kind, Message: msg})
}

// deadline honours X-Request-Timeout (seconds), then ?timeoutSec=.
func (h *Handle) deadline(c *gin.Context) (context.Context, context.CancelFunc) {
	d := h.timeout
	for _, ts := range []string{c.GetHeader("X-Request-Timeout"), c.Query("timeoutSec")} {
		if v, _ := strconv.Atoi(ts); v > 0 {
			d = time.Duration(v) * time.Second
			break
		}
	}
	if d <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), d)
}

// common resolves language and engine; false means the response is written.
func (h *Handle) common(c *gin.Context, language, llmName string) (i18n.Language, *recognition.Client, bool) {
	lang := i18n.EN
	if language != "" {
		l, err := i18n.Parse(language)
		if err != nil {
			abort(c, http.StatusBadRequest, "unsupported_language", err.Error())
			return "", nil, false
		}
		lang = l
	}
	cl, err := h.engs.GetEngine(llmName)
	if err != nil {
		abort(c, http.StatusBadRequest, "unknown_engine", err.Error())
		return "", nil, false
	}
	return lang, cl, true
}

func bind(c *gin.Context, v any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)
	if err := c.ShouldBindJSON(v); err != nil {
		abort(c, http.StatusBadRequest, "bad_json", err.Error())
		return false
	}
	return true
}
