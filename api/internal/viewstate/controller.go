// Package viewstate owns the landmark lookup state machine shared by every
// front end, including the directions sub-state.
package viewstate

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"landmark-lens/api/internal/i18n"
	"landmark-lens/api/internal/recognition"
)

// Recognizer is the subset of *recognition.Client the controller drives.
type Recognizer interface {
	GetLandmarkInfo(ctx context.Context, image []byte, mimeType string, lang i18n.Language) (recognition.LandmarkInfo, error)
	GetDirections(ctx context.Context, destination, origin string, lang i18n.Language) (recognition.DirectionsInfo, error)
}

// Snapshot is everything a front end needs to render.
type Snapshot struct {
	State       State
	Directions  Directions
	Language    i18n.Language
	Translating bool
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func WithLanguage(l i18n.Language) Option {
	return func(c *Controller) {
		if l.Valid() {
			c.lang = l
		}
	}
}

// WithReleaser registers a hook that frees a preview handle once the
// controller stops referencing it (reset or a newer file).
func WithReleaser(fn func(uri string)) Option {
	return func(c *Controller) { c.release = fn }
}

// Controller is safe for concurrent use. The mutex is never held during a
// model call; instead every flow remembers the generation it started in and
// drops its result if a newer action superseded it.
type Controller struct {
	rec     Recognizer
	log     *zap.Logger
	release func(uri string)

	mu          sync.Mutex
	state       State
	dir         Directions
	lang        i18n.Language
	translating bool
	preview     string
	gen         uint64 // landmark flows: file, language re-fetch, reset
	dirGen      uint64 // directions flows: submit, clear, file, reset

	obsMu     sync.Mutex
	nextObs   int
	observers []observer
}

type observer struct {
	id int
	fn func(Snapshot)
}

func New(rec Recognizer, opts ...Option) *Controller {
	c := &Controller{
		rec:   rec,
		log:   zap.NewNop(),
		state: Initial{},
		lang:  i18n.EN,
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.Named("viewstate")
	return c
}

// Subscribe registers fn to receive a Snapshot after every change. The
// returned func removes it.
func (c *Controller) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	c.nextObs++
	id := c.nextObs
	c.observers = append(c.observers, observer{id: id, fn: fn})
	return func() {
		c.obsMu.Lock()
		defer c.obsMu.Unlock()
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Directions() Directions {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dir
}

func (c *Controller) Language() i18n.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lang
}

func (c *Controller) Translating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.translating
}

// Text is the UI copy for the active language.
func (c *Controller) Text() i18n.Table {
	return i18n.For(c.Language())
}

// SelectFile validates f and, if accepted, identifies the landmark in it.
// Rejected files move straight to the error phase without a model call.
func (c *Controller) SelectFile(ctx context.Context, f File) {
	mime, err := Accept(f)
	if err != nil {
		c.log.Info("file rejected", zap.String("name", f.Name), zap.String("content_type", f.ContentType))
		c.mu.Lock()
		c.gen++
		c.translating = false
		c.state = Failure{Message: i18n.For(c.lang).Error.InvalidFile}
		c.commitLocked()
		return
	}

	encoded := encode(f.Data)
	uri := previewURI(f, mime, encoded)

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.dirGen++
	c.dir = Directions{}
	c.translating = false
	old := c.preview
	c.preview = uri
	lang := c.lang
	c.state = Loading{Message: i18n.For(lang).Loading.Analyzing}
	c.commitLocked()
	c.releasePreview(old, uri)

	if !c.transition(gen, Loading{Message: i18n.For(lang).Loading.GeneratingInfo}) {
		return
	}

	info, err := c.rec.GetLandmarkInfo(ctx, f.Data, mime, lang)
	if err != nil {
		c.failLandmark(gen)
		return
	}
	c.transition(gen, Result{
		Landmark:     info,
		ImageURI:     uri,
		ImageEncoded: encoded,
		MimeType:     mime,
	})
}

// SetLanguage switches the UI language. When a result is on screen the
// landmark, and any fetched route, are requested again in the new language.
func (c *Controller) SetLanguage(ctx context.Context, lang i18n.Language) {
	if !lang.Valid() {
		c.log.Warn("ignoring unsupported language", zap.String("lang", string(lang)))
		return
	}

	c.mu.Lock()
	if lang == c.lang {
		c.mu.Unlock()
		return
	}
	c.lang = lang
	res, ok := c.state.(Result)
	if !ok {
		c.commitLocked()
		return
	}
	c.gen++
	gen := c.gen
	c.translating = true
	c.commitLocked()

	img, err := decode(res.ImageEncoded)
	if err != nil {
		c.log.Error("stored image is not valid base64", zap.Error(err))
		c.failLandmark(gen)
		return
	}
	info, err := c.rec.GetLandmarkInfo(ctx, img, res.MimeType, lang)
	if err != nil {
		c.failLandmark(gen)
		return
	}

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return
	}
	c.state = Result{
		Landmark:     info,
		ImageURI:     res.ImageURI,
		ImageEncoded: res.ImageEncoded,
		MimeType:     res.MimeType,
	}
	origin := strings.TrimSpace(c.dir.Origin)
	rerun := c.dir.Info != nil && origin != ""
	dg := c.dirGen
	if !rerun {
		c.translating = false
	}
	c.commitLocked()
	if !rerun {
		return
	}

	d, err := c.rec.GetDirections(ctx, info.Name, origin, lang)

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return
	}
	if c.dirGen != dg {
		// a newer directions action owns the route now
		c.translating = false
		c.commitLocked()
		return
	}
	if err != nil {
		c.mu.Unlock()
		c.failLandmark(gen)
		return
	}
	c.dir.Info = &d
	c.translating = false
	c.commitLocked()
}

// ShowDirectionsForm opens the origin form; only meaningful under a result.
func (c *Controller) ShowDirectionsForm() {
	c.mu.Lock()
	if _, ok := c.state.(Result); !ok || c.dir.FormVisible {
		c.mu.Unlock()
		return
	}
	c.dir.FormVisible = true
	c.commitLocked()
}

func (c *Controller) HideDirectionsForm() {
	c.mu.Lock()
	if !c.dir.FormVisible {
		c.mu.Unlock()
		return
	}
	c.dir.FormVisible = false
	c.commitLocked()
}

// ClearDirections drops the fetched route (and abandons one in flight).
func (c *Controller) ClearDirections() {
	c.mu.Lock()
	c.dirGen++
	c.dir.Info = nil
	c.dir.Loading = false
	c.dir.FormVisible = false
	c.commitLocked()
}

// SubmitDirections requests a route from origin to the current landmark.
// Failure is logged only: the result stays on screen and the form stays open.
func (c *Controller) SubmitDirections(ctx context.Context, origin string) {
	origin = strings.TrimSpace(origin)

	c.mu.Lock()
	res, ok := c.state.(Result)
	if !ok || origin == "" {
		c.mu.Unlock()
		return
	}
	c.dirGen++
	dg := c.dirGen
	lang := c.lang
	c.dir.Origin = origin
	c.dir.Loading = true
	c.dir.Info = nil
	c.commitLocked()

	d, err := c.rec.GetDirections(ctx, res.Landmark.Name, origin, lang)

	c.mu.Lock()
	if c.dirGen != dg {
		c.mu.Unlock()
		return
	}
	c.dir.Loading = false
	if err != nil {
		c.log.Warn("could not get directions", zap.String("destination", res.Landmark.Name), zap.Error(err))
	} else {
		c.dir.Info = &d
		c.dir.FormVisible = false
	}
	c.commitLocked()
}

// Reset returns to the initial phase from anywhere and forgets the route,
// the origin address and the current preview.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.gen++
	c.dirGen++
	c.state = Initial{}
	c.dir = Directions{}
	c.translating = false
	old := c.preview
	c.preview = ""
	c.commitLocked()
	c.releasePreview(old, "")
}

// transition applies s if gen is still current.
func (c *Controller) transition(gen uint64, s State) bool {
	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return false
	}
	c.state = s
	c.commitLocked()
	return true
}

func (c *Controller) failLandmark(gen uint64) {
	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return
	}
	c.translating = false
	c.state = Failure{Message: i18n.For(c.lang).Error.Landmark}
	c.commitLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:       c.state,
		Directions:  c.dir,
		Language:    c.lang,
		Translating: c.translating,
	}
}

// commitLocked releases c.mu and notifies observers with the new snapshot.
func (c *Controller) commitLocked() {
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.log.Debug("state changed",
		zap.String("phase", string(snap.State.Phase())),
		zap.String("lang", snap.Language.String()),
		zap.Bool("translating", snap.Translating),
		zap.Bool("directions_loading", snap.Directions.Loading))

	c.obsMu.Lock()
	obs := make([]observer, len(c.observers))
	copy(obs, c.observers)
	c.obsMu.Unlock()
	for _, o := range obs {
		o.fn(snap)
	}
}

func (c *Controller) releasePreview(old, current string) {
	if c.release != nil && old != "" && old != current {
		c.release(old)
	}
}
