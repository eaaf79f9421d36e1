package fuzzy

import (
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"a", "a", 0},
		{"schema", "schema", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},
		{"a", "ab", 1},
		{"ab", "a", 1},

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},

		// Runes, not bytes
		{"café", "cafe", 1},
		{"ünïcode", "unicode", 2},

		// Case-sensitive
		{"ABC", "abc", 3},

		// Real-world names
		{"no-must-wrod", "no-must-word", 2},
		{"componets", "components", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Levenshtein(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}

			if reverse := Levenshtein(tt.b, tt.a); reverse != result {
				t.Errorf("Levenshtein symmetry failed: (%q, %q) = %d, reversed = %d", tt.a, tt.b, result, reverse)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected float64
	}{
		{"", "", 1.0},
		{"No_Must-Word", "nomustword", 1.0},
		{"abc", "xyz", 0.0},
		{"kitten", "sitting", 1.0 - 3.0/7.0},
		{"a.schema.json", "b.schema.json", 1.0 - 1.0/11.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Similarity(tt.a, tt.b)
			if diff := result - tt.expected; diff < -0.001 || diff > 0.001 {
				t.Errorf("Similarity(%q, %q) = %f, want %f", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestClosest(t *testing.T) {
	ids := []string{"schema-draft", "schema-comment", "no-must-word", "no-uppercase-rfc"}

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"no-must-wrod", "no-must-word", true},
		{"schema-drafts", "schema-draft", true},
		{"SCHEMA_COMMENT", "schema-comment", true},
		{"title", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(tt.name, ids)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Closest(%q) = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestClosestPrefersEarlierOnTie(t *testing.T) {
	got, ok := Closest("ab", []string{"ax", "ay"})
	if ok {
		t.Fatalf("Closest matched %q below threshold", got)
	}

	got, ok = Closest("abcd", []string{"abcx", "abcy"})
	if !ok || got != "abcx" {
		t.Errorf("Closest = %q, %v, want abcx", got, ok)
	}
}

func BenchmarkSimilarity(b *testing.B) {
	for b.Loop() {
		Similarity("cyclonedx-common-2.0.schema.json", "cyclonedx-component-2.0.schema.json")
	}
}
