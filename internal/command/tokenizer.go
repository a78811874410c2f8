package command

import (
	"strings"
	"unicode"
)

// tokenize splits the input into tokens, respecting double quotes and
// backslash escapes. The quotes themselves are not part of the token
// and `\"` unescapes to a literal quote.
func tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	escaped := false

	for _, r := range input {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}

		if r == '\\' {
			escaped = true
			continue
		}

		if r == '"' {
			inQuotes = !inQuotes
			continue
		}

		if unicode.IsSpace(r) && !inQuotes {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}
