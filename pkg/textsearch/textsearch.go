// Package textsearch normaliza texto libre para búsquedas insensibles a
// mayúsculas y a la forma de composición Unicode (p. ej. Hangul compuesto vs jamo).
package textsearch

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize aplica NFC, plegado de mayúsculas y recorte de espacios.
// cases.Caser guarda estado, por eso se crea uno por llamada.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = cases.Fold().String(s)
	return strings.TrimSpace(s)
}

// Contains informa si needle aparece en haystack tras normalizar ambos.
// Un needle vacío coincide siempre.
func Contains(haystack, needle string) bool {
	n := Normalize(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Normalize(haystack), n)
}

// Index acumula fragmentos normalizados para buscar varias veces sobre el mismo texto.
type Index struct {
	b strings.Builder
}

// Add agrega fragmentos al índice; los vacíos se ignoran.
func (ix *Index) Add(parts ...string) {
	for _, p := range parts {
		if p == "" {
			continue
		}
		ix.b.WriteString(Normalize(p))
		ix.b.WriteByte('\n')
	}
}

// Match informa si la consulta normalizada aparece en el índice.
func (ix *Index) Match(query string) bool {
	q := Normalize(query)
	if q == "" {
		return true
	}
	return strings.Contains(ix.b.String(), q)
}
