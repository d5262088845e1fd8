package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Namer suggests a short product name from a photo. Implementations
// must treat failures as advisory; the caller falls back to manual
// entry and never blocks on a suggestion.
type Namer interface {
	SuggestName(ctx context.Context, imageDataURL string) (string, error)
}

const (
	defaultModel   = "gemini-2.5-flash"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	namePrompt = "Analise esta imagem de um produto de supermercado. Retorne APENAS o nome curto e comum do produto em Português do Brasil (ex: 'Coca-Cola 2L', 'Arroz Tio João 5kg'). Não use pontuação final."
)

var dataURLHeader = regexp.MustCompile(`^data:image/(png|jpeg|jpg);base64,`)

// GeminiNamer calls the Gemini generateContent REST endpoint with the
// captured frame and a fixed Portuguese prompt.
type GeminiNamer struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiNamer returns nil when no API key is configured; callers
// check for nil and skip the suggestion step entirely.
func NewGeminiNamer(apiKey string) *GeminiNamer {
	if apiKey == "" {
		return nil
	}
	return &GeminiNamer{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	InlineData *inlineData `json:"inline_data,omitempty"`
	Text       string      `json:"text,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// SuggestName sends the image and returns the model's trimmed reply.
// The data URL header, when present, is stripped before upload.
func (g *GeminiNamer) SuggestName(ctx context.Context, imageDataURL string) (string, error) {
	payload := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     StripDataURLHeader(imageDataURL),
				}},
				{Text: namePrompt},
			},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal vision request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call vision api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("vision api status %d: %s", resp.StatusCode, snippet)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode vision response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("vision api returned no candidates")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

// StripDataURLHeader removes a leading data:image/...;base64, prefix
// so only the raw base64 payload is sent upstream.
func StripDataURLHeader(image string) string {
	return dataURLHeader.ReplaceAllString(image, "")
}
