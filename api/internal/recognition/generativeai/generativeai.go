// Package generativeai is the Generator backed by the older
// github.com/google/generative-ai-go SDK. That SDK cannot attach the Google
// Search tool, so its replies never carry citations.
package generativeai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"landmark-lens/api/internal/recognition"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "generativeai" }
func (e *Engine) GetModel() string { return e.Model }

// GenerateLandmark ignores grounding.
func (e *Engine) GenerateLandmark(ctx context.Context, image []byte, mimeType, prompt string, _ bool) (recognition.Reply, error) {
	return e.generate(ctx, "landmark",
		&genai.Blob{MIMEType: mimeType, Data: image},
		genai.Text(prompt),
	)
}

func (e *Engine) GenerateDirections(ctx context.Context, prompt string) (recognition.Reply, error) {
	return e.generate(ctx, "directions", genai.Text(prompt))
}

func (e *Engine) generate(ctx context.Context, op string, parts ...genai.Part) (recognition.Reply, error) {
	if e.APIKey == "" {
		return recognition.Reply{}, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return recognition.Reply{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return recognition.Reply{}, fmt.Errorf("generativeai: model is nil")
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return recognition.Reply{}, fmt.Errorf("generativeai %s: %w", op, err)
	}
	txt := firstText(resp)
	if strings.TrimSpace(txt) == "" {
		return recognition.Reply{}, fmt.Errorf("generativeai %s: empty response", op)
	}
	return recognition.Reply{Text: txt}, nil
}

// firstText concatenates the text parts of the first candidate that has any.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}
