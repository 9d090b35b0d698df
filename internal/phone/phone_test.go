package phone

import "testing"

func TestNormalize(t *testing.T) {
	plan := DefaultPlan()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "mobile with plus and calling code",
			input:    "+971501234567",
			expected: "971501234567",
		},
		{
			name:     "mobile with separators",
			input:    "+971 50 123 4567",
			expected: "971501234567",
		},
		{
			name:     "mobile with trailing digits truncated",
			input:    "+971 50 123 4567 ext 89",
			expected: "971501234567",
		},
		{
			name:     "dubai landline keeps eight digits",
			input:    "+971 4 123 4567",
			expected: "97141234567",
		},
		{
			name:     "no calling code passes through stripped",
			input:    "0501234567",
			expected: "0501234567",
		},
		{
			name:     "calling code with unknown prefix passes through",
			input:    "+971 2 345 6789",
			expected: "97123456789",
		},
		{
			name:     "parentheses and dashes stripped",
			input:    "(050) 123-4567",
			expected: "0501234567",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "short mobile not padded",
			input:    "+9715012",
			expected: "9715012",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input, plan)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUsable(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"971501234567", true},
		{"0501234567", true},
		{"12345", false},
		{"123456", true},
		{"", false},
	}

	for _, tt := range tests {
		if got := Usable(tt.input); got != tt.expected {
			t.Errorf("Usable(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeCustomPlan(t *testing.T) {
	plan := Plan{
		CallingCode:    "1",
		MobilePrefix:   "2",
		MobileDigits:   10,
		LandlinePrefix: "3",
		LandlineDigits: 10,
	}

	if got := Normalize("+1 212 555 0100 99", plan); got != "12125550100" {
		t.Errorf("expected truncation to plan digits, got %q", got)
	}
}
