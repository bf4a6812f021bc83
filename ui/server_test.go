package ui

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dhamidi/lamcyk/lambda"
	"github.com/google/go-cmp/cmp"
)

type apiResult struct {
	Input    string   `json:"input"`
	Accepted bool     `json:"accepted"`
	Free     []string `json:"free"`
	Error    string   `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := NewServer(lambda.Default())
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return ts
}

func TestAnalyzeAPI(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/analyze?q=" + url.QueryEscape("(lambda (y) (x y))"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var got []apiResult
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[0].Accepted {
		t.Fatalf("unexpected response %+v", got)
	}
	if diff := cmp.Diff([]string{"x"}, got[0].Free); diff != "" {
		t.Errorf("free mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeAPIMissingQuery(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/analyze")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestBatchAPI(t *testing.T) {
	ts := newTestServer(t)

	body := `{"inputs": ["x", "lambda(x)x", ""]}`
	resp, err := http.Post(ts.URL+"/api/batch", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got []apiResult
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	if !got[0].Accepted || got[1].Accepted || got[2].Error == "" {
		t.Errorf("unexpected results %+v", got)
	}
}

func TestIndexPage(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"<form"}},
		{"(lambda (x) (x y))", []string{"accepted", "Free variables: y", "<table>"}},
		{"lambda(x)x", []string{"rejected", "<table>"}},
		{"(lambda(x)x)", []string{"<em>none</em>"}},
	}
	for _, tt := range tests {
		resp, err := http.Get(ts.URL + "/?q=" + url.QueryEscape(tt.query))
		if err != nil {
			t.Fatal(err)
		}
		var sb strings.Builder
		_, err = io.Copy(&sb, resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatal(err)
		}
		for _, w := range tt.want {
			if !strings.Contains(sb.String(), w) {
				t.Errorf("page for %q misses %q", tt.query, w)
			}
		}
	}
}
