package common

import "testing"

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]float64{
		21.6667: 22,
		21.5:    22,
		21.49:   21,
		-2.5:    -2,
		-2.51:   -3,
		0:       0,
	}
	for in, want := range cases {
		if got := RoundHalfUp(in); got != want {
			t.Errorf("RoundHalfUp(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		22:    "22",
		21.5:  "21.5",
		-3.25: "-3.25",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestHasAny(t *testing.T) {
	if !HasAny("maps: ZERO_RESULTS", "zero_results") {
		t.Errorf("expected a case-insensitive match")
	}
	if HasAny("OVER_QUERY_LIMIT", "ZERO_RESULTS", "no results") {
		t.Errorf("expected no match")
	}
}
