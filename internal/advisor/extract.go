package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mkhatkar/stockmitra/internal/models"
)

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// extractJSON pulls the first JSON object out of a model reply,
// tolerating markdown fences and surrounding prose.
func extractJSON(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		raw = strings.TrimSpace(m[1])
	}
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", errors.New("reply contains no JSON object")
	}
	depth := 0
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], nil
			}
		}
	}
	return "", errors.New("reply contains an unterminated JSON object")
}

// parseRecommendation decodes and normalizes a model reply. Action and
// risk collapse onto their enums, confidence clamps to [0,1], reasons
// truncate to three.
func parseRecommendation(raw string) (*models.Recommendation, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}
	var rec models.Recommendation
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("decode model reply: %w", err)
	}
	if strings.TrimSpace(rec.Summary) == "" {
		return nil, errors.New("model reply has no summary")
	}

	rec.Action = normalizeAction(rec.Action)
	rec.RiskLevel = normalizeRisk(rec.RiskLevel)
	rec.Confidence = clampConfidence(rec.Confidence)
	if len(rec.Reasons) > 3 {
		rec.Reasons = rec.Reasons[:3]
	}
	if len(rec.Reasons) == 0 {
		rec.Reasons = []string{rec.Summary}
	}
	if rec.ShortTermOutlook == "" {
		rec.ShortTermOutlook = "No near-term view was given."
	}
	if rec.LongTermOutlook == "" {
		rec.LongTermOutlook = "No long-term view was given."
	}
	return &rec, nil
}

func normalizeAction(action string) string {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "buy", "strong buy", "accumulate":
		return models.ActionBuy
	case "sell", "strong sell", "reduce":
		return models.ActionSell
	default:
		return models.ActionHold
	}
}

func normalizeRisk(risk string) string {
	switch strings.ToLower(strings.TrimSpace(risk)) {
	case "low":
		return models.RiskLow
	case "high":
		return models.RiskHigh
	default:
		return models.RiskMedium
	}
}

// clampConfidence keeps confidence in [0,1], reading values like 75 as
// percentages.
func clampConfidence(c float64) float64 {
	if c > 1 && c <= 100 {
		c /= 100
	}
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
