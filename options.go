package calc

// Option is an option for parsing or evaluating expressions. Parse ignores
// options that only affect evaluation, and NewContext ignores options that
// only affect parsing, so the same list can be given to both.
type Option interface {
	option()
}

type (
	precopt      uint
	strictdivopt struct{}
	commaopt     struct{}
)

func (precopt) option()      {}
func (strictdivopt) option() {}
func (commaopt) option()     {}

// DefaultPrec is the default precision of calculations in bits. It is the
// precision of a float64, so that results match double arithmetic.
const DefaultPrec = 53

// Prec sets the precision of calculations in bits. Regardless of precision,
// magnitudes beyond the range of a float64 become infinite.
func Prec(prec uint) Option {
	return precopt(prec)
}

// StrictDivision makes division by zero an error. By default, dividing a
// nonzero number by zero is infinite.
func StrictDivision() Option {
	return strictdivopt{}
}

// DecimalComma accepts a comma as the decimal separator in addition to a
// point.
func DecimalComma() Option {
	return commaopt{}
}

// parsectx holds general data for parsing.
type parsectx struct {
	// comma indicates that commas are decimal separators.
	comma bool
}

func (p *parsectx) apply(opts []Option) {
	for _, opt := range opts {
		if _, ok := opt.(commaopt); ok {
			p.comma = true
		}
	}
}
