package glide

import (
	"context"

	"github.com/valkey-io/valkey-glide-sub004/internal/normalize"
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// XRange returns the stream entries between start and end inclusive,
// in stream order.
func (c *Client) XRange(ctx context.Context, key, start, end string) ([]models.StreamEntry[string], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("XRANGE", key, start, end))
	if err != nil {
		return nil, err
	}
	res, err := normalize.Entries(reply, normalize.Text)
	return observe(c, "XRange", res, err)
}

// XRangeBytes is the binary form of XRange.
func (c *Client) XRangeBytes(ctx context.Context, key []byte, start, end string) ([]models.StreamEntry[[]byte], error) {
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("XRANGE", key, []byte(start), []byte(end)))
	if err != nil {
		return nil, err
	}
	res, err := normalize.Entries(reply, normalize.Bytes)
	return observe(c, "XRangeBytes", res, err)
}

// XClaim transfers ownership of the given pending entries to consumer
// and returns the claimed entries. Entries deleted from the stream
// while pending are dropped from the result.
func (c *Client) XClaim(ctx context.Context, key, group, consumer string, minIdleMillis int64, ids ...string) ([]models.StreamEntry[string], error) {
	args := append([]string{key, group, consumer, formatInt(minIdleMillis)}, ids...)
	reply, err := c.exec(ctx, protocol.NewCommand("XCLAIM", args...))
	if err != nil {
		return nil, err
	}
	res, err := normalize.Entries(reply, normalize.Text)
	return observe(c, "XClaim", res, err)
}

// XClaimBytes is the binary form of XClaim.
func (c *Client) XClaimBytes(ctx context.Context, key []byte, group, consumer string, minIdleMillis int64, ids ...string) ([]models.StreamEntry[[]byte], error) {
	args := [][]byte{key, []byte(group), []byte(consumer), []byte(formatInt(minIdleMillis))}
	for _, id := range ids {
		args = append(args, []byte(id))
	}
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("XCLAIM", args...))
	if err != nil {
		return nil, err
	}
	res, err := normalize.Entries(reply, normalize.Bytes)
	return observe(c, "XClaimBytes", res, err)
}

// XRead reads entries from the given streams newer than the paired ids.
// The special id "$" asks for entries that arrive after the call; a
// server timeout on that form yields an absent result, while an empty
// read on concrete ids stays a present, empty one.
func (c *Client) XRead(ctx context.Context, keys []string, ids []string) (models.Result[[]models.StreamRead[string]], error) {
	args := append([]string{"STREAMS"}, append(keys, ids...)...)
	reply, err := c.exec(ctx, protocol.NewCommand("XREAD", args...))
	if err != nil {
		return models.NilOf[[]models.StreamRead[string]](), err
	}
	res, err := normalize.StreamsRead(reply, normalize.Text, awaitsNew(ids, "$"))
	return observe(c, "XRead", res, err)
}

// XReadBytes is the binary form of XRead.
func (c *Client) XReadBytes(ctx context.Context, keys [][]byte, ids []string) (models.Result[[]models.StreamRead[[]byte]], error) {
	args := [][]byte{[]byte("STREAMS")}
	args = append(args, keys...)
	for _, id := range ids {
		args = append(args, []byte(id))
	}
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("XREAD", args...))
	if err != nil {
		return models.NilOf[[]models.StreamRead[[]byte]](), err
	}
	res, err := normalize.StreamsRead(reply, normalize.Bytes, awaitsNew(ids, "$"))
	return observe(c, "XReadBytes", res, err)
}

// XReadGroup reads entries on behalf of consumer in group. The special
// id ">" asks for never-delivered entries and behaves like XRead's "$"
// with respect to absence.
func (c *Client) XReadGroup(ctx context.Context, group, consumer string, keys []string, ids []string) (models.Result[[]models.StreamRead[string]], error) {
	args := []string{group, consumer, "STREAMS"}
	args = append(args, keys...)
	args = append(args, ids...)
	reply, err := c.exec(ctx, protocol.NewCommand("XREADGROUP", append([]string{"GROUP"}, args...)...))
	if err != nil {
		return models.NilOf[[]models.StreamRead[string]](), err
	}
	res, err := normalize.StreamsRead(reply, normalize.Text, awaitsNew(ids, ">"))
	return observe(c, "XReadGroup", res, err)
}

// XReadGroupBytes is the binary form of XReadGroup.
func (c *Client) XReadGroupBytes(ctx context.Context, group, consumer string, keys [][]byte, ids []string) (models.Result[[]models.StreamRead[[]byte]], error) {
	args := [][]byte{[]byte("GROUP"), []byte(group), []byte(consumer), []byte("STREAMS")}
	args = append(args, keys...)
	for _, id := range ids {
		args = append(args, []byte(id))
	}
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("XREADGROUP", args...))
	if err != nil {
		return models.NilOf[[]models.StreamRead[[]byte]](), err
	}
	res, err := normalize.StreamsRead(reply, normalize.Bytes, awaitsNew(ids, ">"))
	return observe(c, "XReadGroupBytes", res, err)
}

func awaitsNew(ids []string, sentinel string) bool {
	for _, id := range ids {
		if id == sentinel {
			return true
		}
	}
	return false
}

// XAutoClaim claims pending entries idle for at least minIdleMillis,
// scanning from start, and returns the next scan cursor alongside the
// claimed entries.
func (c *Client) XAutoClaim(ctx context.Context, key, group, consumer string, minIdleMillis int64, start string) (models.XAutoClaim[string], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("XAUTOCLAIM", key, group, consumer, formatInt(minIdleMillis), start))
	if err != nil {
		return models.XAutoClaim[string]{}, err
	}
	res, err := normalize.AutoClaim(reply, normalize.Text)
	return observe(c, "XAutoClaim", res, err)
}

// XAutoClaimBytes is the binary form of XAutoClaim.
func (c *Client) XAutoClaimBytes(ctx context.Context, key []byte, group, consumer string, minIdleMillis int64, start string) (models.XAutoClaim[[]byte], error) {
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("XAUTOCLAIM", key, []byte(group), []byte(consumer), []byte(formatInt(minIdleMillis)), []byte(start)))
	if err != nil {
		return models.XAutoClaim[[]byte]{}, err
	}
	res, err := normalize.AutoClaim(reply, normalize.Bytes)
	return observe(c, "XAutoClaimBytes", res, err)
}

// XAutoClaimJustID is XAutoClaim's JUSTID form: claimed entries come
// back as bare ids without field data.
func (c *Client) XAutoClaimJustID(ctx context.Context, key, group, consumer string, minIdleMillis int64, start string) (models.XAutoClaimJustID[string], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("XAUTOCLAIM", key, group, consumer, formatInt(minIdleMillis), start, "JUSTID"))
	if err != nil {
		return models.XAutoClaimJustID[string]{}, err
	}
	res, err := normalize.AutoClaimJustID(reply, normalize.Text)
	return observe(c, "XAutoClaimJustID", res, err)
}

// XPending returns the summary form of a group's pending entries:
// total count, smallest and greatest pending ids, and per-consumer
// counts.
func (c *Client) XPending(ctx context.Context, key, group string) (models.XPendingSummary[string], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("XPENDING", key, group))
	if err != nil {
		return models.XPendingSummary[string]{}, err
	}
	res, err := normalize.PendingSummary(reply, normalize.Text)
	return observe(c, "XPending", res, err)
}

// XPendingDetails returns the extended form of XPENDING: one row per
// pending entry in the id range, up to count rows.
func (c *Client) XPendingDetails(ctx context.Context, key, group, start, end string, count int64) ([]models.XPendingDetail[string], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("XPENDING", key, group, start, end, formatInt(count)))
	if err != nil {
		return nil, err
	}
	res, err := normalize.PendingDetails(reply, normalize.Text)
	return observe(c, "XPendingDetails", res, err)
}

// XInfoStream describes the stream at key, including its first and
// last entries when the stream is non-empty.
func (c *Client) XInfoStream(ctx context.Context, key string) (models.XInfoStream[string], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("XINFO", "STREAM", key))
	if err != nil {
		return models.XInfoStream[string]{}, err
	}
	res, err := normalize.InfoStream(reply, normalize.Text)
	return observe(c, "XInfoStream", res, err)
}

// XInfoStreamFull is XInfoStream's FULL form, carrying the entry list
// instead of first/last entries.
func (c *Client) XInfoStreamFull(ctx context.Context, key string) (models.XInfoStream[string], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("XINFO", "STREAM", key, "FULL"))
	if err != nil {
		return models.XInfoStream[string]{}, err
	}
	res, err := normalize.InfoStream(reply, normalize.Text)
	return observe(c, "XInfoStreamFull", res, err)
}

// XInfoGroups describes the consumer groups of the stream at key.
func (c *Client) XInfoGroups(ctx context.Context, key string) ([]models.XInfoGroup[string], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("XINFO", "GROUPS", key))
	if err != nil {
		return nil, err
	}
	res, err := normalize.InfoGroups(reply, normalize.Text)
	return observe(c, "XInfoGroups", res, err)
}

// XInfoConsumers describes the consumers of group on the stream at key.
func (c *Client) XInfoConsumers(ctx context.Context, key, group string) ([]models.XInfoConsumer[string], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("XINFO", "CONSUMERS", key, group))
	if err != nil {
		return nil, err
	}
	res, err := normalize.InfoConsumers(reply, normalize.Text)
	return observe(c, "XInfoConsumers", res, err)
}
