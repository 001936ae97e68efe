package risk

import (
	"math"
	"strings"
	"time"

	"github.com/compile-and-cry/GlobePay/pkg/money"
)

// Assessment is a heuristic 0-100 risk score with a tier label and the
// ordered list of reasons that contributed.
type Assessment struct {
	Score   int      `json:"score"`
	Label   string   `json:"label"`
	Reasons []string `json:"reasons"`
}

// LabelFor maps a score to its tier: >=70 high, >=40 medium, else low.
func LabelFor(score int) string {
	switch {
	case score >= 70:
		return "high"
	case score >= 40:
		return "medium"
	default:
		return "low"
	}
}

// knownHandleSuffixes are provider tags considered ordinary in a payee
// handle's domain part. Matched case-insensitively as substrings.
var knownHandleSuffixes = []string{
	"upi", "oksbi", "okhdfcbank", "okicici", "ybl", "ibl", "axl",
	"paytm", "apl", "sbi", "rbi", "axisbank",
}

// flagKeywords trip the note check. One bump regardless of how many match.
var flagKeywords = []string{
	"gift", "lottery", "refund", "crypto", "usdt", "investment", "urgent", "test",
}

// Scorer computes the additive intake risk heuristic. Pure: the clock is an
// explicit input so scoring is deterministic under test.
type Scorer struct {
	settlementCurrency string
}

func NewScorer(settlementCurrency string) *Scorer {
	return &Scorer{settlementCurrency: strings.ToUpper(settlementCurrency)}
}

// Assess scores one submission. Reasons preserve evaluation order: amount
// thresholds, cross-border, handle checks, note keywords, time effects.
func (s *Scorer) Assess(handle, sourceCurrency string, amountINR float64, note string, now time.Time) Assessment {
	score := 5.0
	var reasons []string

	amount := math.Max(amountINR, 0)
	if amount > 50_000 {
		score += 20
		reasons = append(reasons, "high amount")
	}
	if amount > 200_000 {
		score += 18
		reasons = append(reasons, "very large amount")
	}
	if amount > 500_000 {
		score += 18
		reasons = append(reasons, "extremely large amount")
	}

	if strings.ToUpper(sourceCurrency) != s.settlementCurrency {
		score += 12
		reasons = append(reasons, "cross-border")
	}

	trimmed := strings.TrimSpace(handle)
	if !strings.Contains(trimmed, "@") {
		score += 15
		reasons = append(reasons, "invalid handle format")
	} else {
		parts := strings.SplitN(trimmed, "@", 2)
		suffix := strings.ToLower(parts[1])
		known := false
		for _, tag := range knownHandleSuffixes {
			if strings.Contains(suffix, tag) {
				known = true
				break
			}
		}
		if !known {
			score += 10
			reasons = append(reasons, "uncommon handle")
		}
		if parts[0] == "" {
			score += 8
			reasons = append(reasons, "empty handle")
		}
	}

	if note != "" {
		noteLow := strings.ToLower(note)
		for _, keyword := range flagKeywords {
			if strings.Contains(noteLow, keyword) {
				score += 10
				reasons = append(reasons, "flagged keywords")
				break
			}
		}
	}

	hour := now.Hour()
	if hour < 6 || hour >= 23 {
		score += 6
		reasons = append(reasons, "off-hours")
	}
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		score += 4
		reasons = append(reasons, "weekend")
	}

	final := int(math.Round(money.Clamp(score, 0, 100)))

	return Assessment{
		Score:   final,
		Label:   LabelFor(final),
		Reasons: reasons,
	}
}
