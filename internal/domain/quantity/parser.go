// Package quantity convierte el texto libre de un conteo de stock en una cantidad
// no negativa. Acepta separador decimal "," o "." y sumas abreviadas con + - * /
// (ej. "12+6" = dos conteos parciales). La evaluación es una gramática cerrada:
// nunca se delega a un evaluador genérico.
package quantity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain"
)

// maxInputLen limita la profundidad de recursión del evaluador.
const maxInputLen = 128

// ErrParseFailure se devuelve para cualquier entrada no interpretable.
// Envuelve domain.ErrInvalidQuantity.
var ErrParseFailure = fmt.Errorf("quantity: %w", domain.ErrInvalidQuantity)

// Parse normaliza raw, valida el conjunto de caracteres y evalúa la expresión.
// El resultado siempre es >= 0; cualquier otro caso devuelve ErrParseFailure.
func Parse(raw string) (decimal.Decimal, error) {
	s := Normalize(raw)
	if s == "" || len(s) > maxInputLen || !allowed(s) {
		return decimal.Zero, ErrParseFailure
	}

	v, err := evaluate(s)
	if err != nil {
		// Literal que la gramática no reconoce ("1 000"): parseo numérico directo sin espacios.
		d, ferr := decimal.NewFromString(strings.Join(strings.Fields(s), ""))
		if ferr != nil {
			return decimal.Zero, ErrParseFailure
		}
		v = d
	}
	if v.IsNegative() {
		return decimal.Zero, ErrParseFailure
	}
	return v, nil
}

// Normalize reemplaza "," por "." y recorta espacios.
func Normalize(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
}

// Canonical devuelve la forma textual canónica de una cantidad ("5+3" -> "8").
// Parse(Canonical(d)) reproduce d.
func Canonical(d decimal.Decimal) string {
	return d.String()
}

func allowed(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '+', r == '-', r == '*', r == '/':
		case r == ' ', r == '\t', r == '\n', r == '\r':
		default:
			return false
		}
	}
	return true
}
