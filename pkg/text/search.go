package text

import (
	"strings"

	"github.com/byxorna/roster/pkg/query"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

// MatchIndexes returns the rune offsets in haystack where needle occurs,
// ignoring case. Matches do not overlap.
func MatchIndexes(haystack, needle string) []int {
	hay := lowerRunes(haystack)
	n := lowerRunes(needle)
	if len(n) == 0 || len(n) > len(hay) {
		return nil
	}

	var idx []int
	for i := 0; i+len(n) <= len(hay); {
		if equalRunes(hay[i:i+len(n)], n) {
			idx = append(idx, i)
			i += len(n)
			continue
		}
		i++
	}
	return idx
}

// StyleFilteredText renders haystack with defaultStyle, underlining every
// case-insensitive occurrence of needle.
func StyleFilteredText(haystack, needle string, defaultStyle termenv.Style) string {
	matches := MatchIndexes(haystack, needle)
	if len(matches) == 0 {
		return defaultStyle.Styled(haystack)
	}

	runes := []rune(haystack)
	width := len([]rune(needle))
	b := strings.Builder{}
	last := 0
	for _, start := range matches {
		if start > last {
			b.WriteString(defaultStyle.Styled(string(runes[last:start])))
		}
		b.WriteString(defaultStyle.Underline().Bold().Styled(string(runes[start : start+width])))
		last = start + width
	}
	if last < len(runes) {
		b.WriteString(defaultStyle.Styled(string(runes[last:])))
	}
	return b.String()
}

// lowerRunes folds s the way the name filter does. Folding maps rune to rune,
// so offsets in the result are offsets in s.
func lowerRunes(s string) []rune {
	return []rune(query.Fold(s))
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TruncateWithTail(txt string, width uint, ellipsis string) string {
	return truncate.StringWithTail(txt, width, ellipsis)
}
