// Package slug normaliza nombres de categoría a friendly URLs.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeDiacritics descompone (NFD), elimina marcas combinantes y recompone (NFC).
// Así "Categoría Niños" → "Categoria Ninos" antes de slugificar.
var removeDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make convierte un nombre libre en un slug: sin tildes, minúsculas, y todo
// lo no alfanumérico colapsado a un guion. Devuelve "" si no queda nada útil.
func Make(name string) string {
	folded, _, err := transform.String(removeDiacritics, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	lastHyphen := true // evita guion inicial
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
