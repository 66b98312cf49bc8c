package calc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zephyrtronium/calc"
)

func TestFormatValue(t *testing.T) {
	tenth, fifth := 0.1, 0.2
	cases := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{4, "4"},
		{-3, "-3"},
		{0.25, "0.25"},
		{tenth + fifth, "0.30000000000000004"},
		{1.0 / 3, "0.3333333333333333"},
		{123456789012345, "123456789012345"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{-2.5e30, "-2.5e+30"},
		{0.000001, "0.000001"},
		{1.5e-7, "1.5e-07"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
		{math.SmallestNonzeroFloat64, "5e-324"},
		{math.Inf(1), "∞"},
		{math.Inf(-1), "∞"},
		{math.NaN(), "NaN"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, calc.FormatValue(c.v), "%v", c.v)
	}
}

func TestFormatValueReparses(t *testing.T) {
	for _, v := range []float64{4, -3, 0.25, 1.0 / 3, 2.0 / 3, 1e20, 1e21, 1.5e-7, 6.02214076e23, -1.602176634e-19, 123.456} {
		s := calc.FormatValue(v)
		o := calc.Evaluate(s)
		if assert.Equal(t, calc.Value, o.Kind, "%q: %v", s, o.Err) {
			assert.Equal(t, v, o.Value, "%q", s)
		}
	}
}
