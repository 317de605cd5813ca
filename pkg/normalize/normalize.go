// Package normalize define la forma canónica de los nombres de insumo.
// La identidad lógica de un insumo es (tenant, sucursal, nombre) y los nombres
// llegan tecleados a mano desde la cocina: "Café", "cafe " y "CAFE" deben
// resolver al mismo registro.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ItemName devuelve la clave canónica de un nombre de insumo:
// minúsculas, sin acentos (NFD + remoción de marcas), espacios colapsados.
func ItemName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)
	return strings.Join(strings.Fields(folded), " ")
}
