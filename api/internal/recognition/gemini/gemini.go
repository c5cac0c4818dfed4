// Package gemini is the Generator backed by the Google Gen AI SDK. It is the
// only backend that supports Google Search grounding.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"landmark-lens/api/internal/recognition"
)

type Engine struct {
	client *genai.Client
	Model  string
}

func New(ctx context.Context, apiKey, model string) (*Engine, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Engine{client: cl, Model: strings.TrimSpace(model)}, nil
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) GenerateLandmark(ctx context.Context, image []byte, mimeType, prompt string, grounding bool) (recognition.Reply, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
	var cfg *genai.GenerateContentConfig
	if grounding {
		cfg = &genai.GenerateContentConfig{
			Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		}
	}
	resp, err := e.client.Models.GenerateContent(ctx, e.Model, contents, cfg)
	if err != nil {
		return recognition.Reply{}, fmt.Errorf("gemini landmark: %w", err)
	}
	return toReply(resp)
}

func (e *Engine) GenerateDirections(ctx context.Context, prompt string) (recognition.Reply, error) {
	resp, err := e.client.Models.GenerateContent(ctx, e.Model, genai.Text(prompt), nil)
	if err != nil {
		return recognition.Reply{}, fmt.Errorf("gemini directions: %w", err)
	}
	return toReply(resp)
}

// toReply joins the text parts of the first candidate and collects its web
// grounding chunks.
func toReply(resp *genai.GenerateContentResponse) (recognition.Reply, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return recognition.Reply{}, errors.New("gemini: empty response")
	}
	cand := resp.Candidates[0]

	var b strings.Builder
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			b.WriteString(p.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return recognition.Reply{}, fmt.Errorf("gemini: no text in response (finish reason %q)", cand.FinishReason)
	}

	var cits []recognition.Citation
	if gm := cand.GroundingMetadata; gm != nil {
		for _, ch := range gm.GroundingChunks {
			if ch == nil || ch.Web == nil {
				continue
			}
			cits = append(cits, recognition.Citation{Title: ch.Web.Title, URI: ch.Web.URI})
		}
	}
	return recognition.Reply{Text: b.String(), Citations: cits}, nil
}
