// Package gemini adapts the Gemini generateContent API to the
// MetadataGenerator port.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"shortsmith/internal/errs"
	"shortsmith/internal/types"
)

const requestTimeout = 60 * time.Second

type Adapter struct {
	key     string
	model   string
	baseURL string
	client  *http.Client
	// limiter paces sequential variation calls so bursts stay inside the
	// provider's free-tier quota.
	limiter *rate.Limiter
}

func New(apiKey, model, baseURL string) *Adapter {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Adapter{
		key:     apiKey,
		model:   model,
		baseURL: normalizeBaseURL(baseURL),
		client:  &http.Client{Timeout: 2 * time.Minute},
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// Generate asks the provider for clip metadata. Transport problems surface as
// provider-transport errors; an unparseable or incomplete payload surfaces as
// a metadata-format error.
func (a *Adapter) Generate(ctx context.Context, sourceTitle, sourceDescription string, clipDurationSeconds float64) (types.AIMetadata, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return types.AIMetadata{}, err
	}

	prompt := buildPrompt(sourceTitle, sourceDescription, clipDurationSeconds)
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": prompt}}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return types.AIMetadata{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.baseURL, a.model)

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return types.AIMetadata{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return types.AIMetadata{}, errs.Wrap(errs.ErrProviderTransport, "generating-metadata",
				fmt.Sprintf("timeout after %s (model=%s)", requestTimeout, a.model), err)
		}
		return types.AIMetadata{}, errs.Wrap(errs.ErrProviderTransport, "generating-metadata", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return types.AIMetadata{}, errs.Wrap(errs.ErrProviderTransport, "generating-metadata",
				fmt.Sprintf("status %d, body unreadable", resp.StatusCode), readErr)
		}
		return types.AIMetadata{}, errs.Wrap(errs.ErrProviderTransport, "generating-metadata",
			fmt.Sprintf("status %d: %s", resp.StatusCode, truncate(redactSecrets(string(rb), a.key), 400)), nil)
	}

	var raw struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return types.AIMetadata{}, errs.Wrap(errs.ErrMetadataFormat, "generating-metadata", "decode response", err)
	}
	if len(raw.Candidates) == 0 || len(raw.Candidates[0].Content.Parts) == 0 {
		return types.AIMetadata{}, errs.Wrap(errs.ErrMetadataFormat, "generating-metadata", "empty response", nil)
	}

	var text strings.Builder
	for _, p := range raw.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return parseMetadata(text.String())
}

// GenerateVariations calls Generate count times and collects the results.
// Repeated prompts may legitimately yield similar outputs; no dedup.
func (a *Adapter) GenerateVariations(ctx context.Context, sourceTitle string, count int) ([]types.AIMetadata, error) {
	out := make([]types.AIMetadata, 0, count)
	for i := 0; i < count; i++ {
		md, err := a.Generate(ctx, sourceTitle, "", 0)
		if err != nil {
			return nil, fmt.Errorf("variation %d: %w", i+1, err)
		}
		out = append(out, md)
	}
	return out, nil
}

func buildPrompt(sourceTitle, sourceDescription string, clipDurationSeconds float64) string {
	var b strings.Builder
	b.WriteString("You are an expert YouTube Shorts content strategist. Generate compelling metadata for a YouTube Short.\n\n")
	b.WriteString("Original Video Title: " + sourceTitle + "\n")
	if sourceDescription != "" {
		b.WriteString("Description: " + sourceDescription + "\n")
	}
	if clipDurationSeconds > 0 {
		b.WriteString(fmt.Sprintf("Clip Duration: %.0f seconds\n", clipDurationSeconds))
	}
	b.WriteString(`
Generate the following in JSON format:
1. "hook": a captivating 5-7 word hook that appears at the start
2. "title": an optimized YouTube Shorts title (40-60 characters, relevant keywords)
3. "description": a 150-200 character description with 3-5 hashtags including #Shorts
4. "tags": an array of 10-15 relevant tags for YouTube SEO

Return ONLY valid JSON, no markdown formatting.`)
	return b.String()
}

// parseMetadata strips formatting fences, extracts the first JSON object, and
// validates the required fields.
func parseMetadata(content string) (types.AIMetadata, error) {
	clean, err := extractJSONObject(content)
	if err != nil {
		return types.AIMetadata{}, errs.Wrap(errs.ErrMetadataFormat, "generating-metadata", "no JSON object in response", err)
	}

	var md types.AIMetadata
	if err := json.Unmarshal([]byte(clean), &md); err != nil {
		return types.AIMetadata{}, errs.Wrap(errs.ErrMetadataFormat, "generating-metadata",
			fmt.Sprintf("unmarshal metadata: %s", truncate(clean, 200)), err)
	}
	if strings.TrimSpace(md.Title) == "" || strings.TrimSpace(md.Hook) == "" {
		return types.AIMetadata{}, errs.Wrap(errs.ErrMetadataFormat, "generating-metadata", "missing hook or title", nil)
	}
	return md, nil
}

func extractJSONObject(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errors.New("empty content")
	}

	// Strip markdown code fences.
	if strings.HasPrefix(t, "```") {
		if i := strings.Index(t, "\n"); i >= 0 {
			t = t[i+1:]
		}
		if j := strings.LastIndex(t, "```"); j >= 0 {
			t = t[:j]
		}
		t = strings.TrimSpace(t)
	}

	// Best-effort: take the first JSON object found.
	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		return t[start : end+1], nil
	}
	return "", fmt.Errorf("could not locate JSON object in: %q", truncate(t, 200))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
