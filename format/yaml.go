package format

import (
	"bytes"
	"io"

	"github.com/dhamidi/lamcyk/lambda"
	"gopkg.in/yaml.v3"
)

type YAMLEncoder struct {
	w       io.Writer
	results []*lambda.Result
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(results ...*lambda.Result) error {
	e.results = results
	return encode(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(buildResults(e.results)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
