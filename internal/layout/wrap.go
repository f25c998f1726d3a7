package layout

import "strings"

// Wrap breaks s into lines no wider than width millimeters. Explicit line
// breaks are honored first; within each segment words are packed greedily
// and a break is placed before the word that would overflow. A single word
// wider than the column gets its own line and is allowed to overflow
// rather than being split mid-word.
func Wrap(m FontMetrics, s string, sizePt, width float64) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var out []string
	for _, segment := range strings.Split(s, "\n") {
		words := strings.Fields(segment)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if m.TextWidth(candidate, sizePt) > width {
				out = append(out, line)
				line = word
			} else {
				line = candidate
			}
		}
		out = append(out, line)
	}
	return out
}
