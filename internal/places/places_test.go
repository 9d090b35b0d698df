package places

import (
	"strings"
	"testing"

	"github.com/dishoutapp/dishout/internal/ai"
)

func TestWindowExtractor(t *testing.T) {
	extractor := NewWindowExtractor()

	tests := []struct {
		name     string
		answer   string
		title    string
		expected string
	}{
		{
			name:     "phone after title",
			answer:   "Try Place Alpha for the best shawarma in town. Phone: +971 4 123 4567. Open daily.",
			title:    "Place Alpha",
			expected: "+971 4 123 4567",
		},
		{
			name:     "case insensitive phone label",
			answer:   "Place Beta is a hidden gem. phone: 04 321 7654, worth a visit.",
			title:    "Place Beta",
			expected: "04 321 7654",
		},
		{
			name:     "title not found verbatim",
			answer:   "place gamma is great. Phone: +971 50 111 2222",
			title:    "Place Gamma",
			expected: "",
		},
		{
			name:     "no phone in window",
			answer:   "Place Delta serves excellent biryani but prefers walk-ins.",
			title:    "Place Delta",
			expected: "",
		},
		{
			name: "phone outside window ignored",
			answer: "Place Epsilon has a long writeup. " + strings.Repeat("x", 300) +
				" Phone: +971 50 999 8888",
			title:    "Place Epsilon",
			expected: "",
		},
		{
			name:     "first phone wins",
			answer:   "Place Zeta. Phone: +971 50 111 1111. Also try Phone: +971 50 222 2222.",
			title:    "Place Zeta",
			expected: "+971 50 111 1111",
		},
		{
			name:     "captured group is trimmed",
			answer:   "Place Eta details. Phone:   +971 4 555 6666   end",
			title:    "Place Eta",
			expected: "+971 4 555 6666",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.Extract(tt.answer, tt.title)
			if got != tt.expected {
				t.Errorf("Extract() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFromChunks(t *testing.T) {
	answer := "Two solid options nearby.\n" +
		"Place Alpha serves the classic version. Phone: +971 4 123 4567.\n" +
		"Place Beta is newer and cash-only."

	chunks := []ai.GroundingChunk{
		{Maps: &ai.MapsSource{
			URI:   "https://maps.example/alpha",
			Title: "Place Alpha",
			PlaceAnswerSources: []ai.PlaceAnswerSource{
				{ReviewSnippets: []ai.ReviewSnippet{{Content: "Best shawarma in Deira"}}},
			},
		}},
		{Web: &ai.WebSource{URI: "https://example.com/article", Title: "Top 10 dishes"}},
		{Maps: &ai.MapsSource{URI: "https://maps.example/beta", Title: "Place Beta"}},
	}

	records := FromChunks(answer, chunks, NewWindowExtractor())

	if len(records) != 2 {
		t.Fatalf("Expected web citations filtered out, got %d records", len(records))
	}

	alpha := records[0]
	if alpha.Title != "Place Alpha" {
		t.Errorf("Unexpected title %q", alpha.Title)
	}
	if alpha.PhoneNumber != "+971 4 123 4567" {
		t.Errorf("Expected extracted phone, got %q", alpha.PhoneNumber)
	}
	if alpha.ReviewSnippet != "Best shawarma in Deira" {
		t.Errorf("Expected review snippet, got %q", alpha.ReviewSnippet)
	}

	beta := records[1]
	if beta.PhoneNumber != "" {
		t.Errorf("Place without a phone in the text must keep none, got %q", beta.PhoneNumber)
	}
}

func TestFromChunksEmpty(t *testing.T) {
	records := FromChunks("no places here", nil, NewWindowExtractor())
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}
