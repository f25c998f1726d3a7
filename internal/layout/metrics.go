package layout

// ptToMM converts a length in typographic points to millimeters.
const ptToMM = 25.4 / 72

// Helvetica resolves text widths from the standard Helvetica AFM advance
// widths (per mille of the font size). Runes outside the table fall back to
// a medium glyph width, which keeps wrapping deterministic for any input.
type Helvetica struct{}

const fallbackWidth = 556

// TextWidth implements FontMetrics.
func (Helvetica) TextWidth(s string, sizePt float64) float64 {
	total := 0
	for _, r := range s {
		if w, ok := helveticaWidths[r]; ok {
			total += w
		} else {
			total += fallbackWidth
		}
	}
	return float64(total) / 1000 * sizePt * ptToMM
}

// helveticaWidths holds the advance widths of the printable ASCII range.
var helveticaWidths = map[rune]int{
	' ': 278, '!': 278, '"': 355, '#': 556, '$': 556, '%': 889, '&': 667,
	'\'': 191, '(': 333, ')': 333, '*': 389, '+': 584, ',': 278, '-': 333,
	'.': 278, '/': 278,
	'0': 556, '1': 556, '2': 556, '3': 556, '4': 556,
	'5': 556, '6': 556, '7': 556, '8': 556, '9': 556,
	':': 278, ';': 278, '<': 584, '=': 584, '>': 584, '?': 556, '@': 1015,
	'A': 667, 'B': 667, 'C': 722, 'D': 722, 'E': 667, 'F': 611, 'G': 778,
	'H': 722, 'I': 278, 'J': 500, 'K': 667, 'L': 556, 'M': 833, 'N': 722,
	'O': 778, 'P': 667, 'Q': 778, 'R': 722, 'S': 667, 'T': 611, 'U': 722,
	'V': 667, 'W': 944, 'X': 667, 'Y': 667, 'Z': 611,
	'[': 278, '\\': 278, ']': 278, '^': 469, '_': 556, '`': 333,
	'a': 556, 'b': 556, 'c': 500, 'd': 556, 'e': 556, 'f': 278, 'g': 556,
	'h': 556, 'i': 222, 'j': 222, 'k': 500, 'l': 222, 'm': 833, 'n': 556,
	'o': 556, 'p': 556, 'q': 556, 'r': 333, 's': 500, 't': 278, 'u': 556,
	'v': 500, 'w': 722, 'x': 500, 'y': 500, 'z': 500,
	'{': 334, '|': 260, '}': 334, '~': 584,
}
