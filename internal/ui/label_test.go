package ui

import "testing"

func TestLabel_FixedWidth(t *testing.T) {
	tests := []struct {
		i     int
		total int
		want  string
	}{
		{1, 9, "[1/9]"},
		{9, 9, "[9/9]"},
		{1, 10, "[ 1/10]"},
		{10, 10, "[10/10]"},
		{7, 100, "[  7/100]"},
		{42, 100, "[ 42/100]"},
		{100, 100, "[100/100]"},
	}

	for _, tt := range tests {
		if got := Label(tt.i, tt.total); got != tt.want {
			t.Errorf("Label(%d, %d) = %q, want %q", tt.i, tt.total, got, tt.want)
		}
	}
}

func TestLabel_SameWidthAcrossRun(t *testing.T) {
	total := 12
	width := len(Label(1, total))
	for i := 2; i <= total; i++ {
		if got := len(Label(i, total)); got != width {
			t.Errorf("Label(%d, %d) has width %d, want %d", i, total, got, width)
		}
	}
}
