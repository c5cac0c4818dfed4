package telegram

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"landmark-lens/api/internal/i18n"
	"landmark-lens/api/internal/recognition"
	"landmark-lens/api/internal/store"
	"landmark-lens/api/internal/util"
	"landmark-lens/api/internal/viewstate"
)

type session struct {
	chatID int64
	ctrl   *viewstate.Controller

	mu   sync.Mutex // serializes rendering
	prev viewstate.Snapshot
}

// session returns the chat's controller, creating it on first contact.
func (r *Router) session(chatID int64) *session {
	if v, ok := r.sessions.Load(chatID); ok {
		return v.(*session)
	}
	lang := r.Lang
	if !lang.Valid() {
		lang = i18n.EN
	}
	s := &session{chatID: chatID}
	s.ctrl = viewstate.New(
		chatRecognizer{r: r, chatID: chatID},
		viewstate.WithLanguage(lang),
		viewstate.WithLogger(r.logger().With(zap.Int64("chat_id", chatID))),
	)
	s.prev = s.ctrl.Snapshot()

	v, loaded := r.sessions.LoadOrStore(chatID, s)
	s = v.(*session)
	if !loaded {
		s.ctrl.Subscribe(func(snap viewstate.Snapshot) { r.render(s, snap) })
	}
	return s
}

// chatRecognizer routes calls to the engine the chat selected and logs
// successful lookups.
type chatRecognizer struct {
	r      *Router
	chatID int64
}

func (c chatRecognizer) GetLandmarkInfo(ctx context.Context, image []byte, mimeType string, lang i18n.Language) (recognition.LandmarkInfo, error) {
	cl := c.r.EngManager.Get(c.chatID)
	info, err := cl.GetLandmarkInfo(ctx, image, mimeType, lang)
	if err != nil {
		return info, err
	}
	c.r.recordLookup(ctx, c.chatID, cl, util.SHA256Hex(image), lang, info)
	return info, nil
}

func (c chatRecognizer) GetDirections(ctx context.Context, destination, origin string, lang i18n.Language) (recognition.DirectionsInfo, error) {
	return c.r.EngManager.Get(c.chatID).GetDirections(ctx, destination, origin, lang)
}

func (r *Router) recordLookup(ctx context.Context, chatID int64, cl *recognition.Client, hash string, lang i18n.Language, info recognition.LandmarkInfo) {
	if r.History == nil {
		return
	}
	err := r.History.Record(ctx, &store.Lookup{
		ChatID:      chatID,
		ImageHash:   hash,
		Engine:      cl.Name(),
		Model:       cl.GetModel(),
		Language:    lang.String(),
		Name:        info.Name,
		SourceCount: len(info.Sources),
	})
	if err != nil {
		r.logger().Warn("lookup not recorded", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
