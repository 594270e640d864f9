package mock

import "github.com/fwojciec/fictionfetch"

var _ fictionfetch.Converter = (*Converter)(nil)

// Converter is a mock implementation of fictionfetch.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
