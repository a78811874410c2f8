package glide

import (
	"context"

	"github.com/valkey-io/valkey-glide-sub004/internal/normalize"
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// Scan iterates the keyspace one page at a time. Pass the returned
// cursor to the next call; cursor "0" ends the iteration.
func (c *Client) Scan(ctx context.Context, cursor string, match string, count int64) (models.ScanResult[string], error) {
	args := scanArgs(cursor, match, count)
	reply, err := c.exec(ctx, protocol.NewCommand("SCAN", args...))
	if err != nil {
		return models.ScanResult[string]{}, err
	}
	res, err := normalize.Scan(reply, normalize.Text)
	return observe(c, "Scan", res, err)
}

// ScanBytes is the binary form of Scan. The cursor travels as bytes
// under the same intent as the elements, so binary key names never pass
// through text validation.
func (c *Client) ScanBytes(ctx context.Context, cursor []byte, match []byte, count int64) (models.ScanResult[[]byte], error) {
	args := scanArgsBytes(cursor, match, count)
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("SCAN", args...))
	if err != nil {
		return models.ScanResult[[]byte]{}, err
	}
	res, err := normalize.Scan(reply, normalize.Bytes)
	return observe(c, "ScanBytes", res, err)
}

// SScan iterates the members of a set.
func (c *Client) SScan(ctx context.Context, key, cursor string, match string, count int64) (models.ScanResult[string], error) {
	args := append([]string{key}, scanArgs(cursor, match, count)...)
	reply, err := c.exec(ctx, protocol.NewCommand("SSCAN", args...))
	if err != nil {
		return models.ScanResult[string]{}, err
	}
	res, err := normalize.Scan(reply, normalize.Text)
	return observe(c, "SScan", res, err)
}

// SScanBytes is the binary form of SScan.
func (c *Client) SScanBytes(ctx context.Context, key, cursor []byte, match []byte, count int64) (models.ScanResult[[]byte], error) {
	args := append([][]byte{key}, scanArgsBytes(cursor, match, count)...)
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("SSCAN", args...))
	if err != nil {
		return models.ScanResult[[]byte]{}, err
	}
	res, err := normalize.Scan(reply, normalize.Bytes)
	return observe(c, "SScanBytes", res, err)
}

// HScan iterates the field/value pairs of a hash.
func (c *Client) HScan(ctx context.Context, key, cursor string, match string, count int64) (models.ScanPairsResult[string], error) {
	args := append([]string{key}, scanArgs(cursor, match, count)...)
	reply, err := c.exec(ctx, protocol.NewCommand("HSCAN", args...))
	if err != nil {
		return models.ScanPairsResult[string]{}, err
	}
	res, err := normalize.ScanPairs(reply, normalize.Text)
	return observe(c, "HScan", res, err)
}

// HScanBytes is the binary form of HScan.
func (c *Client) HScanBytes(ctx context.Context, key, cursor []byte, match []byte, count int64) (models.ScanPairsResult[[]byte], error) {
	args := append([][]byte{key}, scanArgsBytes(cursor, match, count)...)
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("HSCAN", args...))
	if err != nil {
		return models.ScanPairsResult[[]byte]{}, err
	}
	res, err := normalize.ScanPairs(reply, normalize.Bytes)
	return observe(c, "HScanBytes", res, err)
}

// ZScan iterates the member/score pairs of a sorted set.
func (c *Client) ZScan(ctx context.Context, key, cursor string, match string, count int64) (models.ScanPairsResult[string], error) {
	args := append([]string{key}, scanArgs(cursor, match, count)...)
	reply, err := c.exec(ctx, protocol.NewCommand("ZSCAN", args...))
	if err != nil {
		return models.ScanPairsResult[string]{}, err
	}
	res, err := normalize.ScanPairs(reply, normalize.Text)
	return observe(c, "ZScan", res, err)
}

// ZScanBytes is the binary form of ZScan.
func (c *Client) ZScanBytes(ctx context.Context, key, cursor []byte, match []byte, count int64) (models.ScanPairsResult[[]byte], error) {
	args := append([][]byte{key}, scanArgsBytes(cursor, match, count)...)
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("ZSCAN", args...))
	if err != nil {
		return models.ScanPairsResult[[]byte]{}, err
	}
	res, err := normalize.ScanPairs(reply, normalize.Bytes)
	return observe(c, "ZScanBytes", res, err)
}

func scanArgs(cursor string, match string, count int64) []string {
	args := []string{cursor}
	if match != "" {
		args = append(args, "MATCH", match)
	}
	if count > 0 {
		args = append(args, "COUNT", formatInt(count))
	}
	return args
}

func scanArgsBytes(cursor []byte, match []byte, count int64) [][]byte {
	args := [][]byte{cursor}
	if len(match) > 0 {
		args = append(args, []byte("MATCH"), match)
	}
	if count > 0 {
		args = append(args, []byte("COUNT"), []byte(formatInt(count)))
	}
	return args
}
