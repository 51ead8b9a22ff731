// Package matrix - numeric-policy options for the native dense
// backend.
package matrix

// DefaultValidateNaNInf is the package default for the NaN/Inf write
// policy of Dense matrices. Kept off: solver internals routinely stage
// intermediate values and validate at their own boundaries.
const DefaultValidateNaNInf = false

// config holds construction-time policy for the native backends.
type config struct {
	validateNaNInf bool
}

// Option configures a native matrix constructor.
type Option func(*config)

// WithValidateNaNInf makes Set reject NaN and +-Inf values with
// ErrNaNInf. Useful when ingesting untrusted data.
func WithValidateNaNInf() Option {
	return func(c *config) { c.validateNaNInf = true }
}

func newConfig(opts []Option) config {
	c := config{validateNaNInf: DefaultValidateNaNInf}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}
