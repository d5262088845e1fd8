package format

import (
	"fmt"
	"strings"
	"time"
)

// BRL renders a value as Brazilian currency, e.g. "R$ 1.234,56".
// Thousands use "." and the decimal separator is ",".
func BRL(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	cents := int64(v*100 + 0.5)
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), frac)
}

// DateTimeShort is the compact pt-BR stamp used in lists: "02/01 15:04".
func DateTimeShort(t time.Time) string {
	return t.Format("02/01 15:04")
}

// DateTimeFull is the full pt-BR stamp used on receipts.
func DateTimeFull(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}
