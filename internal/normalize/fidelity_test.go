package normalize

import (
	"bytes"
	"errors"
	"testing"

	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
)

func bulk(b ...byte) protocol.Reply   { return protocol.Bulk{Bytes: b} }
func bulkStr(s string) protocol.Reply { return protocol.Bulk{Bytes: []byte(s)} }
func status(s string) protocol.Reply  { return protocol.Status{Value: s} }
func integer(n int64) protocol.Reply  { return protocol.Integer{Value: n} }
func double(f float64) protocol.Reply { return protocol.Double{Value: f} }
func array(items ...protocol.Reply) protocol.Reply {
	return protocol.Array{Items: items}
}

func mapOf(pairs ...protocol.Pair) protocol.Reply {
	return protocol.Map{Pairs: pairs}
}

func pair(k, v protocol.Reply) protocol.Pair {
	return protocol.Pair{Key: k, Value: v}
}

func TestTextValidPayloads(t *testing.T) {
	tests := []struct {
		name     string
		input    protocol.Reply
		expected string
	}{
		{"plain ascii", bulkStr("hello"), "hello"},
		{"multibyte utf8", bulkStr("héllo wörld"), "héllo wörld"},
		{"status", status("OK"), "OK"},
		{"integer formatted", integer(-42), "-42"},
		{"double formatted", double(1.5), "1.5"},
		{"cluster scalar wrap", array(integer(42)), "42"},
		{"map first value", mapOf(pair(bulkStr("node1"), bulkStr("v"))), "v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.input)
			if err != nil {
				t.Fatalf("Text() error = %v", err)
			}
			if got.IsNil() {
				t.Fatal("Text() unexpectedly absent")
			}
			if got.Value() != tt.expected {
				t.Errorf("Text() = %q, want %q", got.Value(), tt.expected)
			}
		})
	}
}

func TestTextRejectsInvalidEncoding(t *testing.T) {
	tests := []struct {
		name  string
		input protocol.Reply
	}{
		{"invalid continuation byte", bulk(0xff, 0xfe, 0x01)},
		{"truncated sequence", bulk('a', 0xc3)},
		{"replacement character", bulkStr("a�b")},
		{"c1 control rune", bulkStr("ab")},
		{"lossy status", status("x�")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Text(tt.input)
			if !errors.Is(err, ErrInvalidUTF8) {
				t.Errorf("Text() error = %v, want ErrInvalidUTF8", err)
			}
		})
	}
}

func TestBytesNeverValidates(t *testing.T) {
	payloads := [][]byte{
		{0xff, 0xfe, 0x01},
		{0x00, 0x80, 0x9f},
		[]byte("plain text"),
		{},
	}
	for _, payload := range payloads {
		got, err := Bytes(protocol.Bulk{Bytes: payload})
		if err != nil {
			t.Fatalf("Bytes(%v) error = %v", payload, err)
		}
		if got.IsNil() {
			t.Fatalf("Bytes(%v) unexpectedly absent", payload)
		}
		if !bytes.Equal(got.Value(), payload) {
			t.Errorf("Bytes(%v) = %v, payload altered", payload, got.Value())
		}
	}
}

func TestTextAbsence(t *testing.T) {
	got, err := Text(protocol.Nil{})
	if err != nil {
		t.Fatalf("Text(nil) error = %v", err)
	}
	if !got.IsNil() {
		t.Errorf("Text(nil) = %q, want absent", got.Value())
	}
}

func TestTextShapeMismatch(t *testing.T) {
	_, err := Text(mapOfArray())
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Text(set) error = %v, want ErrShapeMismatch", err)
	}
}

func mapOfArray() protocol.Reply {
	return protocol.Set{Items: []protocol.Reply{bulkStr("a")}}
}

func TestBytesFormatsNumerics(t *testing.T) {
	got, err := Bytes(integer(7))
	if err != nil || got.IsNil() {
		t.Fatalf("Bytes(integer) = %v, %v", got, err)
	}
	if string(got.Value()) != "7" {
		t.Errorf("Bytes(integer) = %q, want %q", got.Value(), "7")
	}
}
