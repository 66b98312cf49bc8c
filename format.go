package calc

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Magnitudes outside [fixedMin, fixedMax) are formatted with an exponent.
const (
	fixedMin = 1e-6
	fixedMax = 1e21
)

// FormatValue renders a finite value in its canonical decimal form: the
// shortest digits that read back as the same float64, with no trailing ".0"
// on whole numbers. Very large and very small magnitudes use an exponent,
// e.g. "1e+21" and "1.5e-07", which Parse also accepts.
func FormatValue(v float64) string {
	switch a := math.Abs(v); {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 0):
		return "∞"
	case a == 0:
		return "0"
	case a < fixedMin, a >= fixedMax:
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return decimal.NewFromFloat(v).String()
}
