package mock

import "demonchart"

var _ demonchart.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of demonchart.Cleaner.
type Cleaner struct {
	CleanFn func(html string) (*demonchart.CleanResult, error)
}

func (c *Cleaner) Clean(html string) (*demonchart.CleanResult, error) {
	return c.CleanFn(html)
}
