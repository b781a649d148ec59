// Package forms binds the option sets to interactive huh forms.
//
// Each form edits a plain state struct. Repeatable lists are edited as
// multi-line text with one item per line; converting between state and
// models is pure so it can be tested without a terminal.
package forms

import "strings"

// joinLines renders a list for a text area.
func joinLines(items []string) string {
	return strings.Join(items, "\n")
}

// splitLines returns the trimmed, non-empty lines of text in order.
func splitLines(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
