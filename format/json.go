package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/lamcyk/cyk"
	"github.com/dhamidi/lamcyk/lambda"
)

type JSONEncoder struct {
	w       io.Writer
	results []*lambda.Result
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(results ...*lambda.Result) error {
	e.results = results
	if err := encode(e.w, e); err != nil {
		return err
	}
	_, err := e.w.Write([]byte("\n"))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildResults(e.results), "", "  ")
}

type jsonResult struct {
	Index    int       `json:"index" yaml:"index"`
	Input    string    `json:"input" yaml:"input"`
	Tokens   []string  `json:"tokens" yaml:"tokens"`
	Accepted bool      `json:"accepted" yaml:"accepted"`
	Free     []string  `json:"free,omitempty" yaml:"free,omitempty"`
	Tree     *jsonNode `json:"tree,omitempty" yaml:"tree,omitempty"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`
	Syntax   string    `json:"syntax,omitempty" yaml:"syntax,omitempty"`
}

type jsonNode struct {
	Symbol string    `json:"symbol" yaml:"symbol"`
	Token  string    `json:"token,omitempty" yaml:"token,omitempty"`
	Left   *jsonNode `json:"left,omitempty" yaml:"left,omitempty"`
	Right  *jsonNode `json:"right,omitempty" yaml:"right,omitempty"`
}

func buildResults(results []*lambda.Result) []jsonResult {
	out := make([]jsonResult, 0, len(results))
	for _, res := range results {
		if res == nil {
			continue
		}
		r := jsonResult{
			Index:    res.Index,
			Input:    res.Input,
			Tokens:   res.Tokens,
			Accepted: res.Accepted,
			Free:     res.Free,
			Tree:     buildNode(res.Tree),
		}
		if r.Tokens == nil {
			r.Tokens = []string{}
		}
		if res.Err != nil {
			r.Error = res.Err.Error()
		}
		if res.Syntax != nil {
			r.Syntax = res.Syntax.Error()
		}
		out = append(out, r)
	}
	return out
}

func buildNode(n *cyk.Node) *jsonNode {
	if n == nil {
		return nil
	}
	return &jsonNode{
		Symbol: string(n.Symbol),
		Token:  n.Token,
		Left:   buildNode(n.Left),
		Right:  buildNode(n.Right),
	}
}
