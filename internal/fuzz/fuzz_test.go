package fuzz

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"creep", "creep", 100},
		{"", "", 100},
		{"creep", "", 0},
		{"karma police", "karma police", 100},
		{"abcd", "abce", 75}, // one substitution: (8-2)/8
	}
	for _, tt := range tests {
		if got := Ratio(tt.a, tt.b); got != tt.want {
			t.Fatalf("Ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRatioSymmetric(t *testing.T) {
	a, b := "no surprises", "surprises no more"
	if Ratio(a, b) != Ratio(b, a) {
		t.Fatalf("Ratio not symmetric: %d vs %d", Ratio(a, b), Ratio(b, a))
	}
}

func TestTokenSetRatio(t *testing.T) {
	// Word order and duplicate tokens must not matter.
	if got := TokenSetRatio("creep radiohead", "radiohead creep"); got != 100 {
		t.Fatalf("reordered tokens = %d, want 100", got)
	}
	if got := TokenSetRatio("creep creep", "creep"); got != 100 {
		t.Fatalf("duplicated tokens = %d, want 100", got)
	}
	// A filename stem with extra noise still scores 100 on the shared subset.
	if got := TokenSetRatio("creep", "01 radiohead creep"); got != 100 {
		t.Fatalf("superset tokens = %d, want 100", got)
	}
	if got := TokenSetRatio("creep", "paranoid android"); got >= 50 {
		t.Fatalf("unrelated tokens = %d, want < 50", got)
	}
}

func TestTokenSetRatioEmpty(t *testing.T) {
	if got := TokenSetRatio("", "creep"); got != 0 {
		t.Fatalf("empty left = %d, want 0", got)
	}
	if got := TokenSetRatio("creep", ""); got != 0 {
		t.Fatalf("empty right = %d, want 0", got)
	}
	if got := TokenSetRatio("", ""); got != 0 {
		t.Fatalf("both empty = %d, want 0", got)
	}
}
