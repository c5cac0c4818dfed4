// Package engines wires the configured Gemini backends into recognition
// clients.
package engines

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"landmark-lens/api/internal/config"
	"landmark-lens/api/internal/recognition"
	"landmark-lens/api/internal/recognition/gemini"
	"landmark-lens/api/internal/recognition/generativeai"
)

// Build creates one client per backend with cfg.GeminiSDK as the default.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*recognition.Engines, error) {
	g, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	engs := recognition.NewEngines(cfg.GeminiSDK,
		recognition.New(g, log),
		recognition.New(generativeai.New(cfg.GeminiAPIKey, cfg.GeminiModel), log),
	)
	if _, err := engs.GetEngine(""); err != nil {
		return nil, fmt.Errorf("GEMINI_SDK: %w", err)
	}
	return engs, nil
}
