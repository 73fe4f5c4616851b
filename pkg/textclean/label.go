package textclean

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const boundingPunctuation = " -–—,;:/.·|"

var (
	whitespace   = regexp.MustCompile(`\s+`)
	openingSpace = regexp.MustCompile(`\(\s+`)
	emptyGroup   = regexp.MustCompile(`\([\s\-–—,;:/.·|]*\)`)
	closingSpace = regexp.MustCompile(`\s+\)`)
	letterRun    = regexp.MustCompile(`\pL+`)
)

var connectorWords = map[language.Base]map[string]bool{
	mustBase("fr"): {
		"à": true, "au": true, "aux": true, "de": true, "des": true, "du": true,
		"en": true, "et": true, "la": true, "le": true, "les": true, "sur": true,
	},
	mustBase("en"): {
		"and": true, "at": true, "in": true, "of": true, "on": true, "the": true, "to": true,
	},
}

var elisions = map[language.Base][]string{
	mustBase("fr"): {"d'", "l'", "d’", "l’"},
}

func mustBase(code string) language.Base {
	return language.MustParseBase(code)
}

// Recase turns shouted words (three letters or more, all capitals) into
// capitalised ones. Shorter capitalised words are left alone as they are
// usually abbreviations.
func Recase(tag language.Tag) Rule {
	return Func(func(text string) string {
		lower := cases.Lower(tag)

		return letterRun.ReplaceAllStringFunc(text, func(word string) string {
			if utf8.RuneCountInString(word) < 3 {
				return word
			}

			for _, r := range word {
				if !unicode.IsUpper(r) {
					return word
				}
			}

			_, size := utf8.DecodeRuneInString(word)
			return word[:size] + lower.String(word[size:])
		})
	})
}

// CleanLabel is the final pass applied to every displayed label
func CleanLabel(tag language.Tag) Rule {
	base, _ := tag.Base()
	connectors := connectorWords[base]
	prefixes := elisions[base]
	recase := Recase(tag)

	return Func(func(text string) string {
		text = norm.NFC.String(text)
		for emptyGroup.MatchString(text) {
			text = emptyGroup.ReplaceAllString(text, "")
		}
		text = whitespace.ReplaceAllString(text, " ")
		text = openingSpace.ReplaceAllString(text, "(")
		text = closingSpace.ReplaceAllString(text, ")")
		text = TrimBounds(text)
		text = recase.Apply(text)

		return lowerConnectors(tag, text, connectors, prefixes)
	})
}

// TrimBounds removes separators hanging off either end of a label and unwraps
// a label that is entirely enclosed in one pair of parentheses.
func TrimBounds(text string) string {
	for {
		trimmed := strings.Trim(text, boundingPunctuation)

		if strings.HasPrefix(trimmed, "(") && closingParenthesis(trimmed) == len(trimmed)-1 {
			trimmed = trimmed[1 : len(trimmed)-1]
		}

		if trimmed == text {
			return text
		}
		text = trimmed
	}
}

func closingParenthesis(text string) int {
	depth := 0

	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

func lowerConnectors(tag language.Tag, text string, connectors map[string]bool, prefixes []string) string {
	if len(connectors) == 0 && len(prefixes) == 0 {
		return text
	}

	lower := cases.Lower(tag)
	words := strings.Split(text, " ")

	for i := 1; i < len(words); i++ {
		word := words[i]
		lowered := lower.String(word)

		if connectors[lowered] {
			words[i] = lowered
			continue
		}

		for _, prefix := range prefixes {
			if strings.HasPrefix(lowered, prefix) && len(word) > len(prefix) {
				words[i] = lower.String(word[:len(prefix)]) + word[len(prefix):]
				break
			}
		}
	}

	return strings.Join(words, " ")
}
