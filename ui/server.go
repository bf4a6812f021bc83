// Package ui serves a small web page and JSON API over the analyzer.
package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/dhamidi/lamcyk/cyk"
	"github.com/dhamidi/lamcyk/format"
	"github.com/dhamidi/lamcyk/lambda"
)

//go:embed templates
var embeddedFS embed.FS

type Server struct {
	analyzer  *lambda.Analyzer
	templates *template.Template
	mux       *http.ServeMux
}

func NewServer(analyzer *lambda.Analyzer) (*Server, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
		"cell": func(t *cyk.Table, i, j int) string {
			return t.At(i, j).String()
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(embeddedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		analyzer:  analyzer,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /api/batch", s.handleBatch)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type indexData struct {
	Query  string
	Result *lambda.Result
	Error  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{Query: r.URL.Query().Get("q")}
	if data.Query != "" {
		res, err := s.analyzer.Analyze(data.Query)
		data.Result = res
		if err != nil {
			data.Error = err.Error()
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}

	res, _ := s.analyzer.Analyze(query)
	s.writeJSON(w, res)
}

type batchRequest struct {
	Inputs []string `json:"inputs"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	results, err := s.analyzer.Batch(r.Context(), req.Inputs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, results...)
}

func (s *Server) writeJSON(w http.ResponseWriter, results ...*lambda.Result) {
	w.Header().Set("Content-Type", "application/json")
	if err := format.NewJSONEncoder(w).Encode(results...); err != nil {
		http.Error(w, "encode: "+err.Error(), http.StatusInternalServerError)
	}
}
