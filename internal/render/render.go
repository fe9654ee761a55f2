// Package render turns products into the text lines shown by the product
// list. Rendering is pure: the same input always yields the same lines.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yizeng/gab/gin/vitrine/internal/domain"
)

// Line is one rendered entry. Key is the product id and is used as the list
// item identity, never displayed.
type Line struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Render maps products to lines one to one, keeping input order. Products
// sharing an id are rendered as separate lines.
func Render(products []domain.Product) []Line {
	lines := make([]Line, 0, len(products))
	for _, p := range products {
		lines = append(lines, Line{
			Key:  p.ID,
			Text: FormatLine(p),
		})
	}

	return lines
}

// FormatLine formats a product as "<name> (R$ <price - discount>)".
func FormatLine(p domain.Product) string {
	return fmt.Sprintf("%s (R$ %s)", p.Name, FormatPrice(p.DisplayedPrice()))
}

// FormatPrice writes v as the shortest decimal that round-trips, without
// currency rounding: 3505.99, 100, -5, 0.000001. Magnitudes of 1e21 and
// above or below 1e-6 switch to exponent form (1e+21, 1.5e-7).
func FormatPrice(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		// Covers negative zero.
		return "0"
	}

	if abs := math.Abs(v); abs >= 1e21 || abs < 1e-6 {
		return exponent(v)
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// exponent drops the zero padding strconv puts on the exponent: 1.5e-07
// becomes 1.5e-7.
func exponent(v float64) string {
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")

	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}
