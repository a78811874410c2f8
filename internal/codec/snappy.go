package codec

import (
	"github.com/golang/snappy"
)

type snappyCodec struct{}

func (snappyCodec) Encode(data []byte) ([]byte, error) {
	// snappy.Encode appends to dst; nil allocates a right-sized slice.
	return snappy.Encode(nil, data), nil
}

func (snappyCodec) Decode(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}
