// Package project loads lamcyk.yaml configuration files.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/lamcyk/freevar"
	"github.com/dhamidi/lamcyk/grammar"
	"github.com/dhamidi/lamcyk/lambda"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up by Load.
const FileName = "lamcyk.yaml"

// Project is the configuration of a lamcyk run.
type Project struct {
	RootDir string `yaml:"-"`

	// GrammarFile is an EBNF grammar, relative to RootDir. Empty selects
	// the built-in lambda grammar.
	GrammarFile string   `yaml:"grammar"`
	Start       string   `yaml:"start"`
	Binder      string   `yaml:"binder"`
	Variable    string   `yaml:"variable"`
	Parallelism int      `yaml:"parallelism"`
	Inputs      []string `yaml:"inputs"`
}

// Default returns the configuration used when no file exists.
func Default() *Project {
	return &Project{
		RootDir:  ".",
		Start:    string(grammar.LambdaStart),
		Binder:   string(grammar.LambdaBinder),
		Variable: string(grammar.LambdaVariable),
	}
}

// Load reads lamcyk.yaml from the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads lamcyk.yaml from rootDir. A missing file yields Default.
func LoadFrom(rootDir string) (*Project, error) {
	proj, err := LoadFile(filepath.Join(rootDir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		proj = Default()
		proj.RootDir = rootDir
		return proj, nil
	}
	return proj, err
}

// LoadFile reads a configuration file. Unset fields keep their defaults.
func LoadFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	proj := Default()
	if err := yaml.Unmarshal(data, proj); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	proj.RootDir = filepath.Dir(path)
	if proj.Parallelism < 0 {
		return nil, fmt.Errorf("parse config %s: parallelism must not be negative", path)
	}
	return proj, nil
}

// Grammar loads the configured grammar.
func (p *Project) Grammar() (*grammar.Grammar, error) {
	if p.GrammarFile == "" {
		if p.Start == "" || grammar.Symbol(p.Start) == grammar.LambdaStart {
			return grammar.Lambda(), nil
		}
		return grammar.Load("lambda.ebnf", strings.NewReader(grammar.LambdaSource()), grammar.Symbol(p.Start))
	}

	path := p.GrammarFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.RootDir, path)
	}
	return grammar.LoadFile(path, grammar.Symbol(p.Start))
}

// Analyzer builds the pipeline described by the configuration.
func (p *Project) Analyzer() (*lambda.Analyzer, error) {
	g, err := p.Grammar()
	if err != nil {
		return nil, err
	}
	a := lambda.New(g, freevar.Analyzer{
		Binder:   grammar.Symbol(p.Binder),
		Variable: grammar.Symbol(p.Variable),
	})
	a.Parallelism = p.Parallelism
	return a, nil
}

// InputsOrSamples returns the configured inputs, or the built-in samples
// when none are configured.
func (p *Project) InputsOrSamples() []string {
	if len(p.Inputs) > 0 {
		return p.Inputs
	}
	return lambda.Samples
}
