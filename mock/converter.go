package mock

import "demonchart"

var _ demonchart.Converter = (*Converter)(nil)

// Converter is a mock implementation of demonchart.Converter.
type Converter struct {
	ConvertFn       func(html string) (string, error)
	ConvertRecordFn func(rec *demonchart.Record) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

func (c *Converter) ConvertRecord(rec *demonchart.Record) (string, error) {
	return c.ConvertRecordFn(rec)
}
