package normalize

import (
	"errors"
	"math"
	"testing"

	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
)

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name     string
		input    protocol.Reply
		expected int64
		absent   bool
		wantErr  error
	}{
		{name: "integer reply", input: integer(42), expected: 42},
		{name: "bulk digits", input: bulkStr("-100"), expected: -100},
		{name: "status digits", input: status("7"), expected: 7},
		{name: "nil is absent", input: protocol.Nil{}, absent: true},
		{name: "cluster wrapped", input: array(integer(5)), expected: 5},
		{name: "map first value", input: mapOf(pair(bulkStr("n1"), integer(9))), expected: 9},
		{name: "non numeric text", input: bulkStr("abc"), wantErr: ErrMalformed},
		{name: "double is not integer", input: double(1.5), wantErr: ErrMalformed},
		{name: "container shape", input: mapOfArray(), wantErr: ErrShapeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceInt(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CoerceInt() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CoerceInt() error = %v", err)
			}
			if got.IsNil() != tt.absent {
				t.Fatalf("CoerceInt() absent = %v, want %v", got.IsNil(), tt.absent)
			}
			if !tt.absent && got.Value() != tt.expected {
				t.Errorf("CoerceInt() = %d, want %d", got.Value(), tt.expected)
			}
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    protocol.Reply
		expected float64
		absent   bool
		wantErr  error
	}{
		{name: "double reply", input: double(3.25), expected: 3.25},
		{name: "integer widens", input: integer(4), expected: 4},
		{name: "bulk float text", input: bulkStr("-0.5"), expected: -0.5},
		{name: "infinity text", input: bulkStr("inf"), expected: math.Inf(1)},
		{name: "nil is absent", input: protocol.Nil{}, absent: true},
		{name: "non numeric text", input: bulkStr("score"), wantErr: ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceFloat(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CoerceFloat() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CoerceFloat() error = %v", err)
			}
			if got.IsNil() != tt.absent {
				t.Fatalf("CoerceFloat() absent = %v, want %v", got.IsNil(), tt.absent)
			}
			if !tt.absent && got.Value() != tt.expected {
				t.Errorf("CoerceFloat() = %v, want %v", got.Value(), tt.expected)
			}
		})
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name     string
		input    protocol.Reply
		expected bool
		absent   bool
		wantErr  error
	}{
		{name: "integer one", input: integer(1), expected: true},
		{name: "integer zero", input: integer(0), expected: false},
		{name: "bulk true", input: bulkStr("true"), expected: true},
		{name: "bulk zero", input: bulkStr("0"), expected: false},
		{name: "nil is absent", input: protocol.Nil{}, absent: true},
		{name: "integer two is malformed", input: integer(2), wantErr: ErrMalformed},
		{name: "yes is malformed", input: bulkStr("yes"), wantErr: ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceBool(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CoerceBool() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CoerceBool() error = %v", err)
			}
			if got.IsNil() != tt.absent {
				t.Fatalf("CoerceBool() absent = %v, want %v", got.IsNil(), tt.absent)
			}
			if !tt.absent && got.Value() != tt.expected {
				t.Errorf("CoerceBool() = %v, want %v", got.Value(), tt.expected)
			}
		})
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"encoding", ErrInvalidUTF8, "encoding"},
		{"parse", ErrMalformed, "parse"},
		{"shape", ErrShapeMismatch, "shape"},
		{"other", errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorKind(tt.err); got != tt.expected {
				t.Errorf("ErrorKind() = %q, want %q", got, tt.expected)
			}
		})
	}
}
