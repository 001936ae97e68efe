package money

import "testing"

func TestRound2(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"exact", 83000.00, 83000.00},
		{"round down", 1.494, 1.49},
		{"round up", 1.496, 1.5},
		{"half away from zero", 0.125, 0.13},
		{"negative half away from zero", -0.125, -0.13},
		{"fee in source units", 124.0 / 83.0, 1.49},
		{"zero", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Round2(tc.in); got != tc.want {
				t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(120, 0, 100); got != 100 {
		t.Errorf("Clamp(120) = %v, want 100", got)
	}
	if got := Clamp(-3, 0, 100); got != 0 {
		t.Errorf("Clamp(-3) = %v, want 0", got)
	}
	if got := Clamp(42, 0, 100); got != 42 {
		t.Errorf("Clamp(42) = %v, want 42", got)
	}
}
