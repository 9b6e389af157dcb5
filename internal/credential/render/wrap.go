package render

import "strings"

// MeasureFunc reports the advance width of a string in the current font.
type MeasureFunc func(s string) float64

// Wrap splits text into lines no wider than maxWidth using greedy word
// wrapping. Words are never split, so a single word wider than maxWidth
// still occupies its own line. Empty input yields no lines.
func Wrap(measure MeasureFunc, text string, maxWidth float64) []string {
	words := strings.Split(text, " ")
	var lines []string
	current := ""

	for _, word := range words {
		test := current
		if current != "" {
			test += " "
		}
		test += word

		if measure(test) > maxWidth && current != "" {
			lines = append(lines, current)
			current = word
		} else {
			current = test
		}
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
