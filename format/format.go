// Package format encodes analysis results and CYK tables.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/lamcyk/lambda"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(results ...*lambda.Result) error
}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "text":
		return NewTextEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "table":
		return NewTableEncoder(w), nil
	case "csv":
		return NewCSVEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", name)
	}
}

// encode marshals with m and writes the bytes to w.
func encode(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
