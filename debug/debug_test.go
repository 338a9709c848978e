package debug

import "testing"

func TestBoolEnv(t *testing.T) {
	for in, want := range map[string]bool{
		"":      false,
		"1":     true,
		"true":  true,
		"TRUE":  true,
		"0":     false,
		"false": false,
		"junk":  false,
	} {
		t.Setenv("EXAMDIFF_DEBUG_TEST", in)
		if got := boolEnv("EXAMDIFF_DEBUG_TEST"); got != want {
			t.Errorf("boolEnv(%q) = %v, want %v", in, got, want)
		}
	}
}
