// Package recognition turns landmark and directions requests into prompts for
// a generative model and parses the replies into typed records.
package recognition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"landmark-lens/api/internal/i18n"
)

// Callers only ever see these two failures; the cause goes to the log.
var (
	ErrRecognitionFailure = errors.New("failed to get information for the landmark in the image")
	ErrDirectionsFailure  = errors.New("failed to generate directions")
)

type Client struct {
	gen Generator
	log *zap.Logger
}

func New(gen Generator, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{gen: gen, log: log.Named("recognition").With(zap.String("engine", gen.Name()))}
}

func (c *Client) Name() string     { return c.gen.Name() }
func (c *Client) GetModel() string { return c.gen.GetModel() }

// GetLandmarkInfo identifies the landmark in image and summarises its history
// in lang, with web-search grounding enabled.
func (c *Client) GetLandmarkInfo(ctx context.Context, image []byte, mimeType string, lang i18n.Language) (LandmarkInfo, error) {
	info, err := c.landmark(ctx, image, mimeType, lang)
	if err != nil {
		c.log.Error("error getting landmark info",
			zap.String("lang", lang.String()),
			zap.String("mime", mimeType),
			zap.Int("bytes", len(image)),
			zap.Error(err))
		return LandmarkInfo{}, ErrRecognitionFailure
	}
	return info, nil
}

func (c *Client) landmark(ctx context.Context, image []byte, mimeType string, lang i18n.Language) (LandmarkInfo, error) {
	if len(image) == 0 {
		return LandmarkInfo{}, errors.New("image is empty")
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return LandmarkInfo{}, fmt.Errorf("mime type %q is not an image", mimeType)
	}
	if !lang.Valid() {
		return LandmarkInfo{}, fmt.Errorf("%w: %q", i18n.ErrUnsupportedLanguage, lang)
	}

	reply, err := c.gen.GenerateLandmark(ctx, image, mimeType, landmarkPrompt(lang), true)
	if err != nil {
		return LandmarkInfo{}, fmt.Errorf("generate: %w", err)
	}
	name, history, err := parseLandmark(reply.Text)
	if err != nil {
		return LandmarkInfo{}, fmt.Errorf("parse: %w", err)
	}
	return LandmarkInfo{
		Name:    name,
		History: history,
		Sources: DedupeSources(reply.Citations),
	}, nil
}

// GetDirections asks for turn-by-turn directions from origin to destination.
func (c *Client) GetDirections(ctx context.Context, destination, origin string, lang i18n.Language) (DirectionsInfo, error) {
	d, err := c.directions(ctx, destination, origin, lang)
	if err != nil {
		c.log.Error("error fetching directions",
			zap.String("lang", lang.String()),
			zap.String("destination", destination),
			zap.Error(err))
		return DirectionsInfo{}, ErrDirectionsFailure
	}
	return d, nil
}

func (c *Client) directions(ctx context.Context, destination, origin string, lang i18n.Language) (DirectionsInfo, error) {
	destination, origin = strings.TrimSpace(destination), strings.TrimSpace(origin)
	if destination == "" || origin == "" {
		return DirectionsInfo{}, errors.New("destination and origin are required")
	}
	if !lang.Valid() {
		return DirectionsInfo{}, fmt.Errorf("%w: %q", i18n.ErrUnsupportedLanguage, lang)
	}

	reply, err := c.gen.GenerateDirections(ctx, directionsPrompt(lang, origin, destination))
	if err != nil {
		return DirectionsInfo{}, fmt.Errorf("generate: %w", err)
	}
	d, err := parseDirections(reply.Text)
	if err != nil {
		return DirectionsInfo{}, fmt.Errorf("parse: %w", err)
	}
	return d, nil
}
