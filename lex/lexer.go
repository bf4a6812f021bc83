// Package lex splits lambda expressions into tokens.
package lex

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// tokenPattern lists the token classes in priority order: a parenthesis,
// the keyword, then identifiers joined by single hyphens.
var tokenPattern = regexp.MustCompile(`[()]|lambda|[a-zA-Z]+(?:-[a-zA-Z]+)*`)

// Position represents a location in source text. Offset is in bytes,
// Column in runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position.
type Token struct {
	Literal  string
	Position Position
}

// End returns the position just past the token.
func (t Token) End() Position {
	return Position{
		Offset: t.Position.Offset + len(t.Literal),
		Line:   t.Position.Line,
		Column: t.Position.Column + len(t.Literal),
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Position, t.Literal)
}

// Tokenize returns the token strings of text. Characters that start no
// token are skipped.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// Scan is like Tokenize but keeps the position of every token.
func Scan(text string) []Token {
	matches := tokenPattern.FindAllStringIndex(text, -1)
	tokens := make([]Token, 0, len(matches))

	line, column, offset := 1, 1, 0
	for _, m := range matches {
		for offset < m[0] {
			r, size := utf8.DecodeRuneInString(text[offset:])
			if r == '\n' {
				line++
				column = 1
			} else {
				column++
			}
			offset += size
		}
		tokens = append(tokens, Token{
			Literal:  text[m[0]:m[1]],
			Position: Position{Offset: m[0], Line: line, Column: column},
		})
	}
	return tokens
}

// Literals returns the literal text of tokens.
func Literals(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Literal
	}
	return out
}
