package glide

import (
	"context"

	"github.com/valkey-io/valkey-glide-sub004/internal/normalize"
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// HGetAll returns all fields of a hash as ordered entries, preserving
// the order the server sent. Both the map framing and the legacy flat
// alternating array normalize identically.
func (c *Client) HGetAll(ctx context.Context, key string) ([]models.FieldValue[string], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("HGETALL", key))
	if err != nil {
		return nil, err
	}
	res, err := fieldValues(reply, normalize.Text)
	return observe(c, "HGetAll", res, err)
}

// HGetAllBytes is the binary form of HGetAll.
func (c *Client) HGetAllBytes(ctx context.Context, key []byte) ([]models.FieldValue[[]byte], error) {
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("HGETALL", key))
	if err != nil {
		return nil, err
	}
	res, err := fieldValues(reply, normalize.Bytes)
	return observe(c, "HGetAllBytes", res, err)
}

func fieldValues[T models.Datum](reply protocol.Reply, mat normalize.Materializer[T]) ([]models.FieldValue[T], error) {
	entries, err := normalize.MapEntries(reply,
		func(r protocol.Reply) (models.Result[T], error) { return mat(r) },
		func(r protocol.Reply) (models.Result[T], error) { return mat(r) },
	)
	if err != nil {
		return nil, err
	}
	out := make([]models.FieldValue[T], 0, len(entries))
	for _, e := range entries {
		if e.Key.IsNil() || e.Value.IsNil() {
			continue
		}
		out = append(out, models.FieldValue[T]{Field: e.Key.Value(), Value: e.Value.Value()})
	}
	return out, nil
}

// SMembers returns the members of a set. The text form yields a
// membership map; set members must be valid text to use it.
func (c *Client) SMembers(ctx context.Context, key string) (map[string]struct{}, error) {
	reply, err := c.exec(ctx, protocol.NewCommand("SMEMBERS", key))
	if err != nil {
		return nil, err
	}
	res, err := normalize.StringSet(reply)
	return observe(c, "SMembers", res, err)
}

// SMembersBytes returns set members as raw byte slices in wire order,
// since bytes cannot key a Go map.
func (c *Client) SMembersBytes(ctx context.Context, key []byte) ([][]byte, error) {
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("SMEMBERS", key))
	if err != nil {
		return nil, err
	}
	res, err := normalize.Values(reply, normalize.Bytes)
	return observe(c, "SMembersBytes", res, err)
}

// LRange returns the list elements between start and stop inclusive.
func (c *Client) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	reply, err := c.exec(ctx, protocol.NewCommand("LRANGE", key, formatInt(start), formatInt(stop)))
	if err != nil {
		return nil, err
	}
	res, err := normalize.Values(reply, normalize.Text)
	return observe(c, "LRange", res, err)
}

// LRangeBytes is the binary form of LRange.
func (c *Client) LRangeBytes(ctx context.Context, key []byte, start, stop int64) ([][]byte, error) {
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("LRANGE", key, []byte(formatInt(start)), []byte(formatInt(stop))))
	if err != nil {
		return nil, err
	}
	res, err := normalize.Values(reply, normalize.Bytes)
	return observe(c, "LRangeBytes", res, err)
}

// LMPop pops up to count values from the first non-empty of keys. An
// absent result means nothing was popped, regardless of which wire
// shape the server answered with.
func (c *Client) LMPop(ctx context.Context, direction string, count int64, keys ...string) (models.Result[models.KeyValues[string]], error) {
	args := popArgs(direction, count, keys)
	reply, err := c.exec(ctx, protocol.NewCommand("LMPOP", args...))
	if err != nil {
		return models.NilOf[models.KeyValues[string]](), err
	}
	res, err := normalize.Pop(reply, normalize.Text)
	return observe(c, "LMPop", res, err)
}

// LMPopBytes is the binary form of LMPop.
func (c *Client) LMPopBytes(ctx context.Context, direction string, count int64, keys ...[]byte) (models.Result[models.KeyValues[[]byte]], error) {
	args := popArgsBytes(direction, count, keys)
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("LMPOP", args...))
	if err != nil {
		return models.NilOf[models.KeyValues[[]byte]](), err
	}
	res, err := normalize.Pop(reply, normalize.Bytes)
	return observe(c, "LMPopBytes", res, err)
}

func popArgs(direction string, count int64, keys []string) []string {
	args := make([]string, 0, len(keys)+4)
	args = append(args, formatInt(int64(len(keys))))
	args = append(args, keys...)
	args = append(args, direction)
	if count > 0 {
		args = append(args, "COUNT", formatInt(count))
	}
	return args
}

func popArgsBytes(direction string, count int64, keys [][]byte) [][]byte {
	args := make([][]byte, 0, len(keys)+4)
	args = append(args, []byte(formatInt(int64(len(keys)))))
	args = append(args, keys...)
	args = append(args, []byte(direction))
	if count > 0 {
		args = append(args, []byte("COUNT"), []byte(formatInt(count)))
	}
	return args
}
