package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const geminiSystemText = `You are an equity research assistant for a market dashboard.
Respond with ONLY a JSON object, no markdown fences and no commentary, with exactly these keys:
"summary" (2-3 sentence plain-English view), "action" ("Buy", "Sell" or "Hold"),
"confidence" (number between 0 and 1), "reasons" (array of at most 3 short strings),
"riskLevel" ("Low", "Medium" or "High"), "shortTermOutlook" (one sentence),
"longTermOutlook" (one sentence).`

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Gemini calls the generative-language REST API directly.
type Gemini struct {
	http   *resty.Client
	apiKey string
	model  string
	log    zerolog.Logger
}

// NewGemini builds the Gemini backend. model defaults to
// gemini-1.5-flash.
func NewGemini(apiKey, model string, log zerolog.Logger) *Gemini {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client := resty.New().
		SetBaseURL("https://generativelanguage.googleapis.com").
		SetTimeout(30 * time.Second)
	return &Gemini{
		http:   client,
		apiKey: apiKey,
		model:  model,
		log:    log.With().Str("component", "gemini").Logger(),
	}
}

func (g *Gemini) Name() string { return "gemini" }

// Generate sends one generateContent request and returns the first
// candidate's text. One attempt, no retries.
func (g *Gemini) Generate(ctx context.Context, symbol, request string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nToday's date is %s. The stock under review is %s.\n\n%s",
		geminiSystemText, time.Now().Format("2006-01-02"), symbol, request)

	var out geminiResponse
	resp, err := g.http.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(geminiRequest{
			Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
			GenerationConfig: geminiGenerationConfig{Temperature: 0.4, MaxOutputTokens: 1024},
		}).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", g.model))
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini reply had no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
