package llm

import "strings"

// CleanJSONBlock strips a markdown code fence from a model reply. Even
// with JSON response mode some replies arrive wrapped in ```json fences;
// unfenced text passes through untouched.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")

	// A bare language tag may still sit on the first line.
	if nl := strings.Index(text, "\n"); nl >= 0 {
		firstLine := strings.TrimSpace(text[:nl])
		if firstLine != "" && len(firstLine) < 20 &&
			!strings.ContainsAny(firstLine, " {[\"") {
			text = text[nl+1:]
		}
	}

	if end := strings.LastIndex(text, "```"); end >= 0 {
		text = text[:end]
	}
	return strings.TrimSpace(text)
}
