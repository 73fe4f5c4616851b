package textclean

import (
	"regexp"
	"strings"
)

var Saint = Pipeline{
	MustWords("St", `saint`),
	MustWords("Ste", `sainte`),
}

// ParenthesesInner normalises bracket styles and the spacing just inside
// each group, dropping groups left empty.
var ParenthesesInner = Pipeline{
	NewPattern(`[\[{]`, "("),
	NewPattern(`[\]}]`, ")"),
	NewPattern(`\(\s+`, "("),
	NewPattern(`\s+\)`, ")"),
	NewPattern(`\(\)`, ""),
}

var (
	doubleParentheses   = regexp.MustCompile(`\(\(([^()]*)\)\)`)
	adjacentParentheses = regexp.MustCompile(`\(([^()]*)\)\s*\(([^()]*)\)`)
	gluedParentheses    = regexp.MustCompile(`([\pL\pN])\(`)
)

// ParenthesesOuter collapses doubled wrappers and repeated neighbouring groups
var ParenthesesOuter = Func(func(text string) string {
	for {
		previous := text

		text = doubleParentheses.ReplaceAllString(text, "(${1})")
		text = adjacentParentheses.ReplaceAllStringFunc(text, func(match string) string {
			groups := adjacentParentheses.FindStringSubmatch(match)
			if strings.EqualFold(strings.TrimSpace(groups[1]), strings.TrimSpace(groups[2])) {
				return "(" + groups[1] + ")"
			}

			return match
		})

		if text == previous {
			break
		}
	}

	return gluedParentheses.ReplaceAllString(text, "${1} (")
})

var nullToken = regexp.MustCompile(`(?i)([\s\-–—]*)(null)([\s\-–—]*)`)

// Null strips literal "null" tokens left behind by exports of empty columns
var Null = Func(func(text string) string {
	matches := nullToken.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var builder strings.Builder
	last := 0

	for _, match := range matches {
		if !isWholeWord(text, match[4], match[5]) {
			continue
		}

		builder.WriteString(text[last:match[0]])

		separators := text[match[2]:match[3]] + text[match[6]:match[7]]
		switch {
		case match[0] == 0 || match[1] == len(text):
		case strings.ContainsAny(separators, "-–—"):
			builder.WriteString(" - ")
		default:
			builder.WriteString(" ")
		}

		last = match[1]
	}

	builder.WriteString(text[last:])

	return builder.String()
})

var RemovePoints = NewPattern(`\.+(\s|$)`, "${1}")
