package content

import (
	"strings"
	"testing"
)

func TestEstimateReadingEmpty(t *testing.T) {
	words, minutes := EstimateReading("")
	if words != 0 {
		t.Errorf("words = %d, want 0", words)
	}
	if minutes != 1 {
		t.Errorf("minutes = %d, want 1 (never a 0 min read)", minutes)
	}
}

func TestEstimateReadingRoundsUp(t *testing.T) {
	tests := []struct {
		words       int
		wantMinutes int
	}{
		{1, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{400, 2},
		{401, 3},
		{1000, 5},
	}
	for _, tt := range tests {
		text := strings.TrimSpace(strings.Repeat("word ", tt.words))
		words, minutes := EstimateReading(text)
		if words != tt.words {
			t.Errorf("words = %d, want %d", words, tt.words)
		}
		if minutes != tt.wantMinutes {
			t.Errorf("minutes for %d words = %d, want %d", tt.words, minutes, tt.wantMinutes)
		}
	}
}

func TestEstimateReadingMonotonic(t *testing.T) {
	prev := 0
	for _, n := range []int{0, 10, 150, 250, 600, 2000} {
		_, minutes := EstimateReading(strings.Repeat("w ", n))
		if minutes < prev {
			t.Fatalf("minutes decreased from %d to %d at %d words", prev, minutes, n)
		}
		prev = minutes
	}
}

func TestEstimateReadingWhitespaceRuns(t *testing.T) {
	words, _ := EstimateReading("one\t\ttwo\n\n  three   four")
	if words != 4 {
		t.Errorf("words = %d, want 4", words)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		tags string
		want string
	}{
		{"", "General"},
		{"travel, photography", "General"},
		{"AI Automation, Business Systems", "AI & Automation"},
		{"business, strategy", "Business"},
		{"Software Development", "Engineering"},
		{"SEO tips", "Marketing"},
		{"Machine Learning", "AI & Automation"},
		// Priority: AI keywords beat business keywords when both present.
		{"business, ai", "AI & Automation"},
	}
	for _, tt := range tests {
		if got := Classify(tt.tags); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.tags, got, tt.want)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	input := "engineering, marketing, ai"
	first := Classify(input)
	for i := 0; i < 50; i++ {
		if got := Classify(input); got != first {
			t.Fatalf("Classify(%q) returned %q then %q", input, first, got)
		}
	}
}
