package rank

import "strings"

// maxSnippetSentences bounds the refined excerpt in subsection_analysis.
const maxSnippetSentences = 3

// Refine trims a context block down to its leading sentences, giving a
// short representative excerpt of the section body.
func Refine(text string, maxSentences int) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" || maxSentences <= 0 {
		return text
	}
	sentences := splitSentences(text)
	if len(sentences) <= maxSentences {
		return text
	}
	return strings.Join(sentences[:maxSentences], " ")
}

// splitSentences does basic sentence splitting on terminal punctuation
// followed by a space.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
