package grammar

import (
	"regexp"
	"strconv"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lamcyk.grammar")

// PatternKind tells how a terminal pattern is matched against a token.
type PatternKind int

const (
	Literal PatternKind = iota
	Regex
)

func (k PatternKind) String() string {
	if k == Regex {
		return "regex"
	}
	return "literal"
}

// Pattern is the right-hand side of a terminal rule.
type Pattern struct {
	Kind PatternKind
	Text string
	re   *regexp.Regexp
}

// NewPattern classifies text once: plain words and texts that do not
// compile as a regular expression are literals, everything else is a regex
// that must match the whole token.
func NewPattern(text string) *Pattern {
	if regexp.QuoteMeta(text) == text {
		return &Pattern{Kind: Literal, Text: text}
	}
	re, err := regexp.Compile(`^(?:` + text + `)$`)
	if err != nil {
		log.Debugf("pattern %q is not a valid regex, matching literally: %s", text, err)
		return &Pattern{Kind: Literal, Text: text}
	}
	return &Pattern{Kind: Regex, Text: text, re: re}
}

// Match reports whether token is matched by the pattern.
func (p *Pattern) Match(token string) bool {
	if p.Kind == Regex {
		return p.re.MatchString(token)
	}
	return p.Text == token
}

func (p *Pattern) String() string {
	return strconv.Quote(p.Text)
}
