package output

import (
	"bytes"
	"testing"
)

func TestPrintValueScalars(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "Nil", value: nil, expected: "(nil)\n"},
		{name: "String", value: "hello", expected: "\"hello\"\n"},
		{name: "Integer", value: int64(42), expected: "(integer) 42\n"},
		{name: "Double", value: float64(1.5), expected: "(double) 1.5\n"},
		{name: "Bytes", value: []byte("raw"), expected: "\"raw\"\n"},
		{name: "Empty Array", value: []any{}, expected: "(empty array)\n"},
		{name: "Empty Map", value: [][2]any{}, expected: "(empty map)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintValue(&buf, tt.value, PrintOpts{Newline: true})
			if buf.String() != tt.expected {
				t.Errorf("PrintValue() = %q, want %q", buf.String(), tt.expected)
			}
		})
	}
}

func TestPrintValueArray(t *testing.T) {
	var buf bytes.Buffer
	PrintValue(&buf, []any{"a", int64(2), nil}, PrintOpts{Newline: true})

	expected := "1) \"a\"\n" +
		"2) (integer) 2\n" +
		"3) (nil)\n"
	if buf.String() != expected {
		t.Errorf("PrintValue() = %q, want %q", buf.String(), expected)
	}
}

func TestPrintValueNestedArray(t *testing.T) {
	var buf bytes.Buffer
	PrintValue(&buf, []any{"outer", []any{"in1", "in2"}}, PrintOpts{Newline: true})

	expected := "1) \"outer\"\n" +
		"2) 1) \"in1\"\n" +
		"   2) \"in2\"\n"
	if buf.String() != expected {
		t.Errorf("PrintValue() = %q, want %q", buf.String(), expected)
	}
}

func TestPrintValueMap(t *testing.T) {
	var buf bytes.Buffer
	PrintValue(&buf, [][2]any{
		{"field", "value"},
		{"count", int64(3)},
	}, PrintOpts{Newline: true})

	expected := "# \"field\" => \"value\"\n" +
		"# \"count\" => (integer) 3\n"
	if buf.String() != expected {
		t.Errorf("PrintValue() = %q, want %q", buf.String(), expected)
	}
}

func TestPrintValueDecoder(t *testing.T) {
	var buf bytes.Buffer
	reverse := func(b []byte) ([]byte, error) {
		out := make([]byte, len(b))
		for i, c := range b {
			out[len(b)-1-i] = c
		}
		return out, nil
	}
	PrintValue(&buf, []byte("cba"), PrintOpts{Decode: reverse, Newline: true})
	if buf.String() != "\"abc\"\n" {
		t.Errorf("PrintValue() = %q, want decoded payload", buf.String())
	}
}

func TestWriteRawValue(t *testing.T) {
	var buf bytes.Buffer
	writeRawValue(&buf, []any{"a", []any{int64(1), "b"}})
	if buf.String() != "a\n1\nb\n" {
		t.Errorf("writeRawValue() = %q", buf.String())
	}
}
