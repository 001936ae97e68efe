package risk

import (
	"testing"
	"time"
)

// Tuesday 10:00 UTC: inside business hours, not a weekend.
var quietTime = time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

func newScorer() *Scorer {
	return NewScorer("INR")
}

func TestAssess_Baseline(t *testing.T) {
	a := newScorer().Assess("foo@oksbi", "INR", 1000, "", quietTime)

	if a.Score != 5 {
		t.Errorf("score = %d, want baseline 5", a.Score)
	}
	if a.Label != "low" {
		t.Errorf("label = %q, want low", a.Label)
	}
	if len(a.Reasons) != 0 {
		t.Errorf("reasons = %v, want none", a.Reasons)
	}
}

func TestAssess_AmountThresholdsAreCumulative(t *testing.T) {
	scorer := newScorer()

	cases := []struct {
		amount float64
		want   int
	}{
		{50_000, 5},
		{50_001, 25},
		{200_001, 43},
		{500_001, 61},
	}

	prev := -1
	for _, tc := range cases {
		a := scorer.Assess("foo@oksbi", "INR", tc.amount, "", quietTime)
		if a.Score != tc.want {
			t.Errorf("amount %v: score = %d, want %d", tc.amount, a.Score, tc.want)
		}
		if a.Score < prev {
			t.Errorf("amount %v: score decreased from %d to %d", tc.amount, prev, a.Score)
		}
		prev = a.Score
	}
}

func TestAssess_HandleChecks(t *testing.T) {
	scorer := newScorer()

	t.Run("missing separator", func(t *testing.T) {
		a := scorer.Assess("foo", "INR", 100, "", quietTime)
		if a.Score != 20 {
			t.Errorf("score = %d, want 5+15", a.Score)
		}
		if len(a.Reasons) != 1 || a.Reasons[0] != "invalid handle format" {
			t.Errorf("reasons = %v, want [invalid handle format]", a.Reasons)
		}
	})

	t.Run("known suffix untouched", func(t *testing.T) {
		a := scorer.Assess("foo@oksbi", "INR", 100, "", quietTime)
		for _, r := range a.Reasons {
			if r == "invalid handle format" || r == "uncommon handle" {
				t.Errorf("unexpected handle penalty: %v", a.Reasons)
			}
		}
	})

	t.Run("suffix is case-insensitive", func(t *testing.T) {
		a := scorer.Assess("foo@OKSBI", "INR", 100, "", quietTime)
		if a.Score != 5 {
			t.Errorf("score = %d, want 5", a.Score)
		}
	})

	t.Run("uncommon suffix", func(t *testing.T) {
		a := scorer.Assess("foo@bogusbank", "INR", 100, "", quietTime)
		if a.Score != 15 {
			t.Errorf("score = %d, want 5+10", a.Score)
		}
	})

	t.Run("empty prefix", func(t *testing.T) {
		a := scorer.Assess("@oksbi", "INR", 100, "", quietTime)
		if a.Score != 13 {
			t.Errorf("score = %d, want 5+8", a.Score)
		}
	})
}

func TestAssess_NoteKeywordsCountOnce(t *testing.T) {
	scorer := newScorer()

	a := scorer.Assess("foo@oksbi", "INR", 100, "URGENT lottery gift", quietTime)
	if a.Score != 15 {
		t.Errorf("score = %d, want 5+10 (single keyword bump)", a.Score)
	}

	count := 0
	for _, r := range a.Reasons {
		if r == "flagged keywords" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("flagged keywords reason appeared %d times, want 1", count)
	}
}

func TestAssess_TimeEffects(t *testing.T) {
	scorer := newScorer()

	t.Run("off-hours", func(t *testing.T) {
		night := time.Date(2025, 6, 3, 23, 30, 0, 0, time.UTC)
		a := scorer.Assess("foo@oksbi", "INR", 100, "", night)
		if a.Score != 11 {
			t.Errorf("score = %d, want 5+6", a.Score)
		}
	})

	t.Run("weekend", func(t *testing.T) {
		saturday := time.Date(2025, 6, 7, 10, 0, 0, 0, time.UTC)
		a := scorer.Assess("foo@oksbi", "INR", 100, "", saturday)
		if a.Score != 9 {
			t.Errorf("score = %d, want 5+4", a.Score)
		}
	})

	t.Run("early sunday morning stacks both", func(t *testing.T) {
		sunday := time.Date(2025, 6, 8, 3, 0, 0, 0, time.UTC)
		a := scorer.Assess("foo@oksbi", "INR", 100, "", sunday)
		if a.Score != 15 {
			t.Errorf("score = %d, want 5+6+4", a.Score)
		}
	})
}

func TestAssess_ReasonOrder(t *testing.T) {
	sunday := time.Date(2025, 6, 8, 3, 0, 0, 0, time.UTC)
	a := newScorer().Assess("foo", "USD", 600_000, "crypto gift", sunday)

	want := []string{
		"high amount",
		"very large amount",
		"extremely large amount",
		"cross-border",
		"invalid handle format",
		"flagged keywords",
		"off-hours",
		"weekend",
	}
	if len(a.Reasons) != len(want) {
		t.Fatalf("reasons = %v, want %v", a.Reasons, want)
	}
	for i, r := range want {
		if a.Reasons[i] != r {
			t.Errorf("reasons[%d] = %q, want %q", i, a.Reasons[i], r)
		}
	}
	if a.Score != 100 {
		t.Errorf("score = %d, want clamp to 100", a.Score)
	}
	if a.Label != "high" {
		t.Errorf("label = %q, want high", a.Label)
	}
}

func TestLabelFor_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "low"},
		{39, "low"},
		{40, "medium"},
		{69, "medium"},
		{70, "high"},
		{100, "high"},
	}
	for _, tc := range cases {
		if got := LabelFor(tc.score); got != tc.want {
			t.Errorf("LabelFor(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
