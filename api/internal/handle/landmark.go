package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"landmark-lens/api/internal/i18n"
	"landmark-lens/api/internal/viewstate"
)

type LandmarkRequest struct {
	ImageB64 string `json:"image_b64"`
	MimeType string `json:"mime_type"`
	Filename string `json:"filename"`
	Language string `json:"language"`
	LLMName  string `json:"llm_name"`
}

func (h *Handle) Landmark(c *gin.Context) {
	var req LandmarkRequest
	if !bind(c, &req) {
		return
	}
	lang, cl, ok := h.common(c, req.Language, req.LLMName)
	if !ok {
		return
	}
	t := i18n.For(lang)

	img, declared, err := decodeImage(req.ImageB64)
	if err != nil {
		abort(c, http.StatusBadRequest, "bad_image_b64", err.Error())
		return
	}
	mime, err := viewstate.Accept(viewstate.File{
		Name:        req.Filename,
		ContentType: contentType(req.MimeType, declared, img),
	})
	if errors.Is(err, viewstate.ErrInvalidFile) {
		abort(c, http.StatusBadRequest, "invalid_file", t.Error.InvalidFile)
		return
	}

	ctx, cancel := h.deadline(c)
	defer cancel()
	info, err := cl.GetLandmarkInfo(ctx, img, mime, lang)
	if err != nil {
		h.log.Warn("landmark request failed", zap.String("engine", cl.Name()), zap.Error(err))
		abort(c, http.StatusBadGateway, "landmark_failure", t.Error.Landmark)
		return
	}
	c.JSON(http.StatusOK, info)
}
