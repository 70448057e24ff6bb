// Package textfold normaliza textos para búsquedas insensibles a mayúsculas y tildes.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas, sin marcas diacríticas y con los espacios colapsados.
// "  Martín  PÉREZ " -> "martin perez".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// Contains informa si needle aparece en haystack, ambos plegados con Fold.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
