package textclean

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule rewrites a piece of text. Rules are applied in the order they are listed
// and every rule must be idempotent on its own output.
type Rule interface {
	Apply(text string) string
}

// Pipeline is an ordered list of rules, itself usable as a Rule
type Pipeline []Rule

func (p Pipeline) Apply(text string) string {
	for _, rule := range p {
		if rule == nil {
			continue
		}
		text = rule.Apply(text)
	}

	return text
}

func (p Pipeline) Clean(text string) string {
	return p.Apply(text)
}

func Clean(text string, rules ...Rule) string {
	return Pipeline(rules).Apply(text)
}

// Pattern is a plain regular expression substitution. Replacement supports the
// usual ${1} group expansion.
type Pattern struct {
	Regexp      *regexp.Regexp
	Replacement string
}

func NewPattern(expression string, replacement string) Pattern {
	return Pattern{
		Regexp:      regexp.MustCompile(expression),
		Replacement: replacement,
	}
}

func (p Pattern) Apply(text string) string {
	return p.Regexp.ReplaceAllString(text, p.Replacement)
}

type Func func(text string) string

func (f Func) Apply(text string) string {
	return f(text)
}

// Words replaces whole words matching any of the alternatives, ignoring case.
// Word edges are checked on letters and digits of any script so accented words
// behave the same as ASCII ones.
type Words struct {
	Regexp      *regexp.Regexp
	Replacement string
}

// NewWords builds a whole-word rule. Alternatives are regular expression
// fragments tried in the given order, so longer forms should come first.
func NewWords(replacement string, alternatives ...string) (Words, error) {
	expression, err := regexp.Compile(`(?i)(?:` + strings.Join(alternatives, "|") + `)`)
	if err != nil {
		return Words{}, err
	}

	return Words{
		Regexp:      expression,
		Replacement: replacement,
	}, nil
}

func MustWords(replacement string, alternatives ...string) Words {
	words, err := NewWords(replacement, alternatives...)
	if err != nil {
		panic(err)
	}

	return words
}

func (w Words) Apply(text string) string {
	matches := w.Regexp.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var builder strings.Builder
	last := 0

	for _, match := range matches {
		if match[0] == match[1] || !isWholeWord(text, match[0], match[1]) {
			continue
		}

		builder.WriteString(text[last:match[0]])
		builder.WriteString(w.Replacement)
		last = match[1]
	}

	builder.WriteString(text[last:])

	return builder.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isWholeWord(text string, start int, end int) bool {
	first, _ := utf8.DecodeRuneInString(text[start:end])
	if isWordRune(first) && start > 0 {
		previous, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(previous) {
			return false
		}
	}

	final, _ := utf8.DecodeLastRuneInString(text[start:end])
	if isWordRune(final) && end < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(next) {
			return false
		}
	}

	return true
}
