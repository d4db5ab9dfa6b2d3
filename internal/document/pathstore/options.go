package pathstore

// Option configures a Store or ArrayStore.
type Option func(*settings)

type settings struct {
	strict bool
}

// WithStrict makes delete and remove operations fail with ErrInvalidPath
// when the addressed path holds no value. Without it they are no-ops.
func WithStrict() Option {
	return func(s *settings) {
		s.strict = true
	}
}
