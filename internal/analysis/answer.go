package analysis

import "strings"

var markupStripper = strings.NewReplacer("*", "", "#", "")

// parseAnswer splits the model's free-text answer into a dish name (first
// line, emphasis markup stripped) and a description (remaining lines).
func parseAnswer(text string) (string, string) {
	lines := strings.Split(text, "\n")
	name := strings.TrimSpace(markupStripper.Replace(lines[0]))
	description := strings.TrimSpace(strings.Join(lines[1:], "\n"))
	return name, description
}
