package glide

import (
	"context"

	"github.com/valkey-io/valkey-glide-sub004/internal/normalize"
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// Get returns the value of key as validated text. A missing key is an
// absent result, not an error; a value holding non-UTF-8 bytes fails
// with ErrInvalidUTF8 and must be read through GetBytes instead.
func (c *Client) Get(ctx context.Context, key string) (models.Result[string], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("GET", key))
	if err != nil {
		return models.NilOf[string](), err
	}
	res, err := normalize.Text(reply)
	return observe(c, "Get", res, err)
}

// GetBytes returns the raw value of key. The payload is never
// validated; the configured codec, if any, is reversed first.
func (c *Client) GetBytes(ctx context.Context, key []byte) (models.Result[[]byte], error) {
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("GET", key))
	if err != nil {
		return models.NilOf[[]byte](), err
	}
	res, err := normalize.Bytes(reply)
	if err == nil && !res.IsNil() {
		decoded, derr := c.decodeValue(res.Value())
		if derr != nil {
			err = derr
		} else {
			res = models.Of(decoded)
		}
	}
	return observe(c, "GetBytes", res, err)
}

// Set stores a text value under key.
func (c *Client) Set(ctx context.Context, key, value string) (string, error) {
	reply, err := c.exec(ctx, protocol.NewCommand("SET", key, value))
	if err != nil {
		return "", err
	}
	res, err := normalize.Text(reply)
	res, err = observe(c, "Set", res, err)
	return res.Value(), err
}

// SetBytes stores a raw value under key, applying the configured codec
// to the value first.
func (c *Client) SetBytes(ctx context.Context, key, value []byte) (string, error) {
	encoded, err := c.encodeValue(value)
	if err != nil {
		return "", err
	}
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("SET", key, encoded))
	if err != nil {
		return "", err
	}
	res, err := normalize.Text(reply)
	res, err = observe(c, "SetBytes", res, err)
	return res.Value(), err
}

// MGet returns the values of keys in order, with an absent result in
// every slot whose key does not exist. Holes are preserved, never
// compacted.
func (c *Client) MGet(ctx context.Context, keys ...string) ([]models.Result[string], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("MGET", keys...))
	if err != nil {
		return nil, err
	}
	res, err := normalize.Slice(reply, normalize.Text)
	return observe(c, "MGet", res, err)
}

// MGetBytes is the binary form of MGet.
func (c *Client) MGetBytes(ctx context.Context, keys ...[]byte) ([]models.Result[[]byte], error) {
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("MGET", keys...))
	if err != nil {
		return nil, err
	}
	res, err := normalize.Slice(reply, normalize.Bytes)
	return observe(c, "MGetBytes", res, err)
}

// Incr increments the integer value of key and returns the new value.
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	reply, err := c.exec(ctx, protocol.NewCommand("INCR", key))
	if err != nil {
		return 0, err
	}
	res, err := normalize.CoerceInt(reply)
	res, err = observe(c, "Incr", res, err)
	return res.Value(), err
}

// Exists reports whether key exists.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	reply, err := c.exec(ctx, protocol.NewCommand("EXISTS", key))
	if err != nil {
		return false, err
	}
	res, err := normalize.CoerceBool(reply)
	res, err = observe(c, "Exists", res, err)
	return res.Value(), err
}
