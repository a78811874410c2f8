package command

import (
	"strings"
)

// Parse extracts the pipe and codec modifiers from a raw input line,
// tokenizes what remains and looks up documentation in the registry.
// A blank line parses to an empty ParsedLine, not an error.
func Parse(input string, reg *Registry) (*ParsedLine, error) {
	if strings.TrimSpace(input) == "" {
		return &ParsedLine{}, nil
	}

	parsed := &ParsedLine{
		Text: input,
	}

	// Strip the ` | shell cmd` suffix first so a codec name is never
	// extracted out of the shell command ("GET key #:gzip | jq .").
	if pipeIdx := strings.Index(input, " | "); pipeIdx != -1 {
		parsed.Pipe = strings.TrimSpace(input[pipeIdx+3:])
		input = input[:pipeIdx]
	}

	// Strip the `#:codec` suffix.
	if codecIdx := strings.LastIndex(input, "#:"); codecIdx != -1 {
		parsed.Codec = strings.TrimSpace(input[codecIdx+2:])
		input = input[:codecIdx]
	}

	tokens := tokenize(input)
	if len(tokens) == 0 {
		return parsed, nil
	}

	parsed.Name = strings.ToUpper(tokens[0])
	if len(tokens) > 1 {
		parsed.Args = tokens[1:]
	}

	if reg != nil {
		parsed.Doc = reg.Get(parsed.Name)
		// A compound form like "XINFO STREAM" wins over the base name.
		if len(parsed.Args) > 0 {
			compound := parsed.Name + " " + strings.ToUpper(parsed.Args[0])
			if doc := reg.Get(compound); doc != nil {
				parsed.Doc = doc
			}
		}
	}

	return parsed, nil
}
