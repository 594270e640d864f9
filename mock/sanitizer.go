package mock

import "github.com/fwojciec/fictionfetch"

var _ fictionfetch.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of fictionfetch.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(fragment string) (string, error)
}

func (s *Sanitizer) Sanitize(fragment string) (string, error) {
	return s.SanitizeFn(fragment)
}
