package command

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Simple",
			input:    "GET mykey",
			expected: []string{"GET", "mykey"},
		},
		{
			name:     "Quoted String",
			input:    `SET key "hello world"`,
			expected: []string{"SET", "key", "hello world"},
		},
		{
			name:     "Escaped Quotes",
			input:    `SET key "hello \"world\""`,
			expected: []string{"SET", "key", `hello "world"`},
		},
		{
			name:     "Unclosed Quotes",
			input:    `SET key "hello`,
			expected: []string{"SET", "key", "hello"},
		},
		{
			name:     "Multiple Spaces",
			input:    "  GET   mykey  ",
			expected: []string{"GET", "mykey"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("tokenize() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}

	tests := []struct {
		name          string
		input         string
		expectedName  string
		expectedArgs  []string
		expectedCodec string
		expectedPipe  string
	}{
		{
			name:         "Simple Command",
			input:        "GET mykey",
			expectedName: "GET",
			expectedArgs: []string{"mykey"},
		},
		{
			name:          "With Codec",
			input:         "GET mykey #:gzip",
			expectedName:  "GET",
			expectedArgs:  []string{"mykey"},
			expectedCodec: "gzip",
		},
		{
			name:         "With Pipe",
			input:        "GET mykey | jq .",
			expectedName: "GET",
			expectedArgs: []string{"mykey"},
			expectedPipe: "jq .",
		},
		{
			name:          "Codec Before Pipe",
			input:         "GET mykey #:gzip | jq .",
			expectedName:  "GET",
			expectedArgs:  []string{"mykey"},
			expectedCodec: "gzip",
			expectedPipe:  "jq .",
		},
		{
			name:         "Lowercase Name Uppercased",
			input:        "get mykey",
			expectedName: "GET",
			expectedArgs: []string{"mykey"},
		},
		{
			name:  "Empty Input",
			input: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.input, reg)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if parsed.Name != tt.expectedName {
				t.Errorf("Name = %q, want %q", parsed.Name, tt.expectedName)
			}
			if !reflect.DeepEqual(parsed.Args, tt.expectedArgs) {
				t.Errorf("Args = %v, want %v", parsed.Args, tt.expectedArgs)
			}
			if parsed.Codec != tt.expectedCodec {
				t.Errorf("Codec = %q, want %q", parsed.Codec, tt.expectedCodec)
			}
			if parsed.Pipe != tt.expectedPipe {
				t.Errorf("Pipe = %q, want %q", parsed.Pipe, tt.expectedPipe)
			}
		})
	}
}

func TestParseCompoundDoc(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}

	parsed, err := Parse("XINFO STREAM mystream", reg)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if parsed.Doc == nil || parsed.Doc.Command != "XINFO STREAM" {
		t.Errorf("Doc = %+v, want XINFO STREAM", parsed.Doc)
	}
}
