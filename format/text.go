package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/lamcyk/lambda"
)

// TextEncoder writes one "Case #<index>: <free variables>" line per
// accepted result and skips the rest.
type TextEncoder struct {
	w       io.Writer
	results []*lambda.Result
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(results ...*lambda.Result) error {
	e.results = results
	return encode(e.w, e)
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	for _, res := range e.results {
		if res == nil || !res.Accepted {
			continue
		}
		fmt.Fprintf(&buf, "Case #%d: %s\n", res.Index, strings.Join(res.Free, " "))
	}
	return buf.Bytes(), nil
}
