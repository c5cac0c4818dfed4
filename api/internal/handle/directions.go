package handle

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"landmark-lens/api/internal/i18n"
)

type DirectionsRequest struct {
	Destination string `json:"destination"`
	Origin      string `json:"origin"`
	Language    string `json:"language"`
	LLMName     string `json:"llm_name"`
}

func (h *Handle) Directions(c *gin.Context) {
	var req DirectionsRequest
	if !bind(c, &req) {
		return
	}
	req.Destination = strings.TrimSpace(req.Destination)
	req.Origin = strings.TrimSpace(req.Origin)
	if req.Destination == "" || req.Origin == "" {
		abort(c, http.StatusBadRequest, "bad_request", "destination and origin are required")
		return
	}
	lang, cl, ok := h.common(c, req.Language, req.LLMName)
	if !ok {
		return
	}

	ctx, cancel := h.deadline(c)
	defer cancel()
	d, err := cl.GetDirections(ctx, req.Destination, req.Origin, lang)
	if err != nil {
		h.log.Warn("directions request failed", zap.String("engine", cl.Name()), zap.Error(err))
		abort(c, http.StatusBadGateway, "directions_failure", i18n.For(lang).Error.Directions)
		return
	}
	c.JSON(http.StatusOK, d)
}
