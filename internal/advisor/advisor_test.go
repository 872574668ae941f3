package advisor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhatkar/stockmitra/config"
	"github.com/mkhatkar/stockmitra/internal/models"
)

type stubBackend struct {
	reply string
	err   error
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Generate(ctx context.Context, symbol, request string) (string, error) {
	return s.reply, s.err
}

func sampleQuote() *models.Quote {
	return &models.Quote{
		Symbol:        "NSE:RELIANCE",
		Name:          "Reliance Industries Ltd",
		Price:         2850.50,
		Change:        88.20,
		ChangePercent: 3.19,
		Volume:        4_500_000,
		Currency:      "INR",
	}
}

func sampleOverview(pe float64) *models.CompanyOverview {
	return &models.CompanyOverview{
		Symbol:           "NSE:RELIANCE",
		Name:             "Reliance Industries Ltd",
		Sector:           "Energy",
		Industry:         "Oil & Gas Refining",
		PERatio:          pe,
		MarketCapDisplay: "₹19.33 L Cr",
	}
}

const modelReply = `Here is my take:
` + "```json" + `
{"summary": "Reliance is breaking out on heavy volume.", "action": "buy",
 "confidence": 0.72, "reasons": ["Momentum", "Volume surge"],
 "riskLevel": "medium", "shortTermOutlook": "Up.", "longTermOutlook": "Constructive."}
` + "```"

func TestAdviseUsesBackendReply(t *testing.T) {
	a := New(&stubBackend{reply: modelReply}, zerolog.Nop())

	rec := a.Advise(context.Background(), sampleQuote(), sampleOverview(24))

	require.NotNil(t, rec)
	assert.Equal(t, "stub", rec.Source)
	assert.Equal(t, models.ActionBuy, rec.Action)
	assert.Equal(t, models.RiskMedium, rec.RiskLevel)
	assert.InDelta(t, 0.72, rec.Confidence, 0.001)
	assert.Equal(t, "NSE:RELIANCE", rec.Symbol)
	assert.False(t, rec.GeneratedAt.IsZero())
}

func TestAdviseFallsBackOnBackendError(t *testing.T) {
	a := New(&stubBackend{err: errors.New("quota exhausted")}, zerolog.Nop())

	rec := a.Advise(context.Background(), sampleQuote(), sampleOverview(24))

	require.NotNil(t, rec)
	assert.Equal(t, models.SourceFallback, rec.Source)
}

func TestAdviseFallsBackOnUnparseableReply(t *testing.T) {
	a := New(&stubBackend{reply: "I cannot answer that."}, zerolog.Nop())

	rec := a.Advise(context.Background(), sampleQuote(), sampleOverview(24))

	assert.Equal(t, models.SourceFallback, rec.Source)
}

func TestAdviseWithoutBackend(t *testing.T) {
	a := New(nil, zerolog.Nop())

	rec := a.Advise(context.Background(), sampleQuote(), nil)

	require.NotNil(t, rec)
	assert.Equal(t, models.SourceFallback, rec.Source)
	assert.NotEmpty(t, rec.Summary)
	assert.NotEmpty(t, rec.Reasons)
	assert.NotEmpty(t, rec.ShortTermOutlook)
	assert.NotEmpty(t, rec.LongTermOutlook)
}

func TestFromConfigUnknownProviderIsRulesOnly(t *testing.T) {
	cfg := &config.Config{AdviceProvider: "astrology"}
	a := FromConfig(context.Background(), cfg, zerolog.Nop())

	rec := a.Advise(context.Background(), sampleQuote(), nil)

	assert.Equal(t, models.SourceFallback, rec.Source)
}

func TestFallbackActionThresholds(t *testing.T) {
	tests := []struct {
		changePercent float64
		want          string
	}{
		{3.1, models.ActionBuy},
		{2.01, models.ActionBuy},
		{2.0, models.ActionHold},
		{0.0, models.ActionHold},
		{-2.0, models.ActionHold},
		{-2.01, models.ActionSell},
		{-5.4, models.ActionSell},
	}
	for _, tt := range tests {
		q := sampleQuote()
		q.ChangePercent = tt.changePercent
		rec := Fallback(q, nil)
		assert.Equal(t, tt.want, rec.Action, "change %.2f%%", tt.changePercent)
		assert.Greater(t, rec.Confidence, 0.0)
	}
}

func TestFallbackRichValuationRaisesRisk(t *testing.T) {
	rec := Fallback(sampleQuote(), sampleOverview(36.5))

	assert.Equal(t, models.RiskHigh, rec.RiskLevel)
	joined := strings.Join(rec.Reasons, " ")
	assert.Contains(t, joined, "36.5")
}

func TestFallbackValueTilt(t *testing.T) {
	rec := Fallback(sampleQuote(), sampleOverview(11.2))

	assert.Equal(t, models.RiskMedium, rec.RiskLevel)
	assert.Contains(t, strings.Join(rec.Reasons, " "), "undemanding")
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"bare", `{"a":1}`, `{"a":1}`, false},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, false},
		{"prose wrapped", `Sure! {"a":1} Hope that helps.`, `{"a":1}`, false},
		{"nested", `{"a":{"b":2}}`, `{"a":{"b":2}}`, false},
		{"no object", "I cannot help with that.", "", true},
		{"unterminated", `{"a":1`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRecommendationNormalizes(t *testing.T) {
	raw := `{"summary":"ok","action":"STRONG BUY","confidence":85,
		"reasons":["a","b","c","d","e"],"riskLevel":"low"}`

	rec, err := parseRecommendation(raw)

	require.NoError(t, err)
	assert.Equal(t, models.ActionBuy, rec.Action)
	assert.Equal(t, models.RiskLow, rec.RiskLevel)
	assert.InDelta(t, 0.85, rec.Confidence, 0.001)
	assert.Len(t, rec.Reasons, 3)
	assert.NotEmpty(t, rec.ShortTermOutlook)
	assert.NotEmpty(t, rec.LongTermOutlook)
}

func TestParseRecommendationRejectsMissingSummary(t *testing.T) {
	_, err := parseRecommendation(`{"action":"Buy"}`)
	assert.Error(t, err)
}

func TestGeminiGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v1beta/models/gemini-1.5-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"summary\":\"fine\"}"}]}}]}`))
	}))
	defer server.Close()

	g := NewGemini("test-key", "", zerolog.Nop())
	g.http.SetBaseURL(server.URL)

	text, err := g.Generate(context.Background(), "AAPL", "numbers here")

	require.NoError(t, err)
	assert.Equal(t, `{"summary":"fine"}`, text)
}

func TestGeminiGenerateHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	g := NewGemini("bad-key", "", zerolog.Nop())
	g.http.SetBaseURL(server.URL)

	_, err := g.Generate(context.Background(), "AAPL", "numbers here")

	assert.Error(t, err)
}

func TestGeminiGenerateEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	g := NewGemini("test-key", "", zerolog.Nop())
	g.http.SetBaseURL(server.URL)

	_, err := g.Generate(context.Background(), "AAPL", "numbers here")

	assert.Error(t, err)
}
