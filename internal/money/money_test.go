package money

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.234, 1.23},
		{1.236, 1.24},
		{-1.236, -1.24},
		{0.1 + 0.2, 0.3},
		{10.0 / 3.0, 3.33},
		{10.0/3.0 + 10.0/3.0 + 10.0/3.0, 10.0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsZero(t *testing.T) {
	for _, x := range []float64{0, 0.005, -0.01, 0.01} {
		if !IsZero(x) {
			t.Errorf("IsZero(%v) = false, want true", x)
		}
	}
	for _, x := range []float64{0.011, -0.02, 1} {
		if IsZero(x) {
			t.Errorf("IsZero(%v) = true, want false", x)
		}
	}
}
