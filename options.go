package formula

// Option is an option for Evaluate, Parse, and Validate.
type Option interface {
	option(config) config
}

// Defaults for options.
const (
	// DefaultPrec is the default precision of calculations in bits, the
	// precision of a float64 mantissa.
	DefaultPrec = 53
	// DefaultMaxDepth is the default bound on nesting of parentheses, unary
	// operators, and exponent chains.
	DefaultMaxDepth = 64
	// DefaultMaxLength is the default bound on formula length in runes.
	DefaultMaxLength = 4096
)

// config holds the settings for a single call.
type config struct {
	prec      uint
	maxDepth  int
	maxLength int
}

func configure(opts []Option) config {
	c := config{
		prec:      DefaultPrec,
		maxDepth:  DefaultMaxDepth,
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	return c
}

type (
	precopt   uint
	depthopt  int
	lengthopt int
)

// Prec sets the precision of calculations in bits. Values below DefaultPrec
// are raised to it, so results are always at least as precise as float64
// arithmetic.
func Prec(bits uint) Option {
	return precopt(bits)
}

func (o precopt) option(c config) config {
	c.prec = uint(o)
	if c.prec < DefaultPrec {
		c.prec = DefaultPrec
	}
	return c
}

// MaxDepth sets the bound on nesting depth. Formulas nested more deeply fail
// with a *ComplexityError. Values below 1 restore the default.
func MaxDepth(n int) Option {
	return depthopt(n)
}

func (o depthopt) option(c config) config {
	c.maxDepth = int(o)
	if c.maxDepth < 1 {
		c.maxDepth = DefaultMaxDepth
	}
	return c
}

// MaxLength sets the bound on formula length in runes, measured before
// substitution. Longer formulas fail with a *ComplexityError. Values below 1
// restore the default.
func MaxLength(n int) Option {
	return lengthopt(n)
}

func (o lengthopt) option(c config) config {
	c.maxLength = int(o)
	if c.maxLength < 1 {
		c.maxLength = DefaultMaxLength
	}
	return c
}
