package format

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dhamidi/lamcyk/cyk"
	"github.com/dhamidi/lamcyk/lambda"
	"github.com/olekukonko/tablewriter"
)

// TableEncoder renders the CYK table of each result as an aligned text
// table: row i, column j holds the symbols deriving tokens i..j.
type TableEncoder struct {
	w       io.Writer
	results []*lambda.Result
}

func NewTableEncoder(w io.Writer) *TableEncoder {
	return &TableEncoder{w: w}
}

func (e *TableEncoder) Encode(results ...*lambda.Result) error {
	e.results = results
	return encode(e.w, e)
}

func (e *TableEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	for _, res := range e.results {
		if res == nil || res.Table == nil {
			continue
		}
		status := "rejected"
		if res.Accepted {
			status = "accepted"
		}
		fmt.Fprintf(&buf, "Case #%d: %s (%s)\n", res.Index, res.Input, status)

		tw := tablewriter.NewWriter(&buf)
		tw.SetHeader(append([]string{""}, res.Tokens...))
		tw.SetAutoFormatHeaders(false)
		tw.SetAutoWrapText(false)
		for _, row := range cells(res.Table, res.Tokens) {
			tw.Append(row)
		}
		tw.Render()
	}
	return buf.Bytes(), nil
}

// CSVEncoder writes the CYK table of each result as CSV, one record per
// table row, preceded by a header of the tokens.
type CSVEncoder struct {
	w       io.Writer
	results []*lambda.Result
}

func NewCSVEncoder(w io.Writer) *CSVEncoder {
	return &CSVEncoder{w: w}
}

func (e *CSVEncoder) Encode(results ...*lambda.Result) error {
	e.results = results
	return encode(e.w, e)
}

func (e *CSVEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	for _, res := range e.results {
		if res == nil || res.Table == nil {
			continue
		}
		if err := cw.Write(append([]string{fmt.Sprintf("#%d", res.Index)}, res.Tokens...)); err != nil {
			return nil, err
		}
		if err := cw.WriteAll(cells(res.Table, res.Tokens)); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

// cells lays the table out as rows labelled with the start token.
func cells(t *cyk.Table, tokens []string) [][]string {
	rows := make([][]string, t.Len())
	for i := range rows {
		row := make([]string, t.Len()+1)
		row[0] = tokens[i]
		for j := i; j < t.Len(); j++ {
			row[j+1] = t.At(i, j).String()
		}
		rows[i] = row
	}
	return rows
}
