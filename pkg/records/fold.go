package records

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// foldName returns the case-insensitive lookup form of a table name.
//
// Names are NFC-normalized first so a decomposed "İ" (I + U+0307) compares
// like the precomposed rune. Each rune is then upper-cased and lower-cased,
// which folds "İstanbul", "ISTANBUL" and "istanbul" to the same key.
func foldName(name string) string {
	return strings.Map(func(r rune) rune {
		return unicode.ToLower(unicode.ToUpper(r))
	}, norm.NFC.String(name))
}

// sameName reports whether a and b refer to the same table ignoring case.
func sameName(a, b string) bool {
	return foldName(a) == foldName(b)
}
