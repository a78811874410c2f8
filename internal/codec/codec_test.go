package codec

import (
	"bytes"
	"testing"
)

func TestCodecRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		input []byte
	}{
		{
			name:  "Plain ASCII",
			input: []byte("Hello, World! This is a test string."),
		},
		{
			name:  "Binary Bytes",
			input: []byte{0x00, 0x01, 0x02, 0xFF, 0xFE, 0xFD, 0x00},
		},
		{
			name:  "Empty Slice",
			input: []byte{},
		},
	}

	for _, codecName := range Names() {
		t.Run(codecName, func(t *testing.T) {
			c, err := Get(codecName)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", codecName, err)
			}

			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					encoded, err := c.Encode(tc.input)
					if err != nil {
						t.Fatalf("Encode failed: %v", err)
					}

					decoded, err := c.Decode(encoded)
					if err != nil {
						t.Fatalf("Decode failed: %v", err)
					}

					if !bytes.Equal(tc.input, decoded) {
						t.Errorf("Round-trip failed.\nExpected: %v\nGot:      %v", tc.input, decoded)
					}
				})
			}
		})
	}
}

func TestGetUnknownCodec(t *testing.T) {
	c, err := Get("unknown")
	if err == nil {
		t.Error("Expected error for unknown codec, got nil")
	}
	if c != nil {
		t.Errorf("Expected nil codec for unknown name, got %T", c)
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	if _, err := Get("Snappy"); err != nil {
		t.Errorf("Get(Snappy) failed: %v", err)
	}
}
