package geography

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// Normalize folds a free-text location into its comparison key: ASCII
// transliteration, lower case, punctuation replaced by single spaces, trimmed.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	folded := strings.ToLower(unidecode.Unidecode(text))

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for i := 0; i < len(folded); i++ {
		c := folded[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteByte(c)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}
