package layout

import "strings"

// Wrap splits s into lines whose rendered width does not exceed maxWidth,
// using greedy word wrapping: words accumulate on the current line while
// they fit, and the first word that does not fit starts the next line. A
// single word wider than maxWidth is placed alone on its own line rather
// than hyphenated. Joining the returned lines with single spaces restores
// the space-normalized input.
func (c *Canvas) Wrap(s string, maxWidth float64, f Font) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if c.TextWidth(f, candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
