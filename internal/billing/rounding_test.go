package billing

import "testing"

func TestRoundUpToQuarterHour(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{0.1, 0.25},
		{0.25, 0.25},
		{50.0 / 60, 1},    // 50 minutes bills as a full hour
		{1.01, 1.25},      // 61 minutes rounds to 75 minutes
		{1.25, 1.25},
		{2.6, 2.75},
		{4, 4},
		{-1, 0},
	}
	for _, c := range cases {
		if got := RoundUpToQuarterHour(c.in); got != c.want {
			t.Errorf("RoundUpToQuarterHour(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRoundUpToQuarterHour_Idempotent(t *testing.T) {
	for _, in := range []float64{0, 0.3, 0.833, 1.01, 7.2, 23.9} {
		once := RoundUpToQuarterHour(in)
		twice := RoundUpToQuarterHour(once)
		if once != twice {
			t.Errorf("rounding %v twice changed the value: %v -> %v", in, once, twice)
		}
	}
}
