package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBatchSamples(t *testing.T) {
	t.Chdir(t.TempDir())

	got, err := run(t, "", "batch")
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"Case #0: x",
		"Case #1: y",
		"Case #2: y",
		"Case #3: x",
		"Case #4: x y",
		"Case #5: x",
		"Case #6: marmota",
		"Case #8: ",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("batch output mismatch (-want +got):\n%s", diff)
	}
}

func TestBatchStdin(t *testing.T) {
	t.Chdir(t.TempDir())

	got, err := run(t, "a\n\n(lambda (a) (a b))\n", "batch", "--stdin", "-j", "1")
	if err != nil {
		t.Fatal(err)
	}
	want := "Case #0: a\nCase #2: b\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("batch output mismatch (-want +got):\n%s", diff)
	}
}

func TestBatchRepeatedArgs(t *testing.T) {
	t.Chdir(t.TempDir())

	got, err := run(t, "", "batch", "x", "y", "x")
	if err != nil {
		t.Fatal(err)
	}
	if want := "Case #0: x\nCase #1: y\nCase #2: x\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBatchConfigInputs(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "lamcyk.yaml")
	if err := os.WriteFile(config, []byte("inputs:\n  - p\n  - (p q)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, "", "--config", config, "batch")
	if err != nil {
		t.Fatal(err)
	}
	if want := "Case #0: p\nCase #1: p q\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParse(t *testing.T) {
	t.Chdir(t.TempDir())

	got, err := run(t, "", "parse", "(x y)", "lambda(x)x")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Accepted! (x y)",
		"free: x y",
		"Rejected! lambda(x)x",
		`unexpected "lambda" at token 0`,
		`S "x"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output misses %q:\n%s", want, got)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := run(t, "", "parse", "  "); err == nil {
		t.Error("expected an error for empty input")
	}
}

func TestFree(t *testing.T) {
	t.Chdir(t.TempDir())

	got, err := run(t, "", "free", "(lambda (y) (lambda (z) (x (y z))))")
	if err != nil {
		t.Fatal(err)
	}
	if got != "x\n" {
		t.Errorf("got %q, want %q", got, "x\n")
	}

	if _, err := run(t, "", "free", "lambda(x)x"); err == nil {
		t.Error("expected an error for a rejected expression")
	}
}

func TestTableCSV(t *testing.T) {
	t.Chdir(t.TempDir())

	got, err := run(t, "", "table", "--format", "csv", "(x y)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "#0,(,x,y,)\n") {
		t.Errorf("unexpected csv header:\n%s", got)
	}
}

func TestGrammarPrint(t *testing.T) {
	t.Chdir(t.TempDir())

	got, err := run(t, "", "grammar")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "S = A B | E F | ") {
		t.Errorf("unexpected grammar:\n%s", got)
	}
}
