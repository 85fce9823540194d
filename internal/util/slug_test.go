package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase", "TRAVEL", "travel"},
		{"spaces to dashes", "road trip", "road-trip"},
		{"underscores to dashes", "road_trip", "road-trip"},
		{"already normalized", "road-trip", "road-trip"},

		// Whitespace handling
		{"trim whitespace", "  nature  ", "nature"},
		{"multiple spaces", "road   trip", "road-trip"},
		{"tabs and spaces", "road\t trip", "road-trip"},

		// Unicode
		{"accents stripped", "Café Culture", "cafe-culture"},
		{"decomposed accents", "São Paulo", "sao-paulo"},
		{"emoji removal", "🐉 Dragons!", "dragons"},

		// Punctuation and dashes
		{"slash", "city/beach", "city-beach"},
		{"multiple dashes", "road--trip", "road-trip"},
		{"mixed dashes", "--road--trip--", "road-trip"},

		// Edge cases
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"only special chars", "!@#$%", ""},
		{"numbers allowed", "Top 10 Beaches", "top-10-beaches"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
