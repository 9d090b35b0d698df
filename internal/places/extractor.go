package places

import (
	"regexp"
	"strings"
)

// PhoneExtractor locates a place's phone number inside the raw answer text.
// The heuristic implementation below is deliberately simple; the seam exists
// so a stricter parser can replace it without touching callers.
type PhoneExtractor interface {
	Extract(answer, title string) string
}

// phonePattern matches "Phone:" followed by digits, separators and an
// optional plus, the shape the model is prompted to emit.
var phonePattern = regexp.MustCompile(`(?i)Phone:\s*([+\d\s()-]+)`)

// defaultWindow is how far past the place title the answer text is scanned.
// Tuned empirically against real model output; do not widen casually, a
// bigger window starts picking up the next restaurant's number.
const defaultWindow = 300

// WindowExtractor scans a fixed-size window of answer text starting at the
// first verbatim occurrence of the place title.
type WindowExtractor struct {
	Window int
}

func NewWindowExtractor() WindowExtractor {
	return WindowExtractor{Window: defaultWindow}
}

func (e WindowExtractor) Extract(answer, title string) string {
	idx := strings.Index(answer, title)
	if idx == -1 {
		return ""
	}

	window := e.Window
	if window <= 0 {
		window = defaultWindow
	}

	end := idx + window
	if end > len(answer) {
		end = len(answer)
	}

	match := phonePattern.FindStringSubmatch(answer[idx:end])
	if match == nil {
		return ""
	}

	return strings.TrimSpace(match[1])
}
