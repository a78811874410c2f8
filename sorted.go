package glide

import (
	"context"

	"github.com/valkey-io/valkey-glide-sub004/internal/normalize"
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// ZScore returns the score of member in the sorted set at key, absent
// when the member does not exist.
func (c *Client) ZScore(ctx context.Context, key, member string) (models.Result[float64], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("ZSCORE", key, member))
	if err != nil {
		return models.NilOf[float64](), err
	}
	res, err := normalize.CoerceFloat(reply)
	return observe(c, "ZScore", res, err)
}

// ZScoreBytes is the binary form of ZScore.
func (c *Client) ZScoreBytes(ctx context.Context, key, member []byte) (models.Result[float64], error) {
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("ZSCORE", key, member))
	if err != nil {
		return models.NilOf[float64](), err
	}
	res, err := normalize.CoerceFloat(reply)
	return observe(c, "ZScoreBytes", res, err)
}

// ZPopMin removes and returns the lowest-scored member, absent when the
// set is empty.
func (c *Client) ZPopMin(ctx context.Context, key string) (models.Result[models.MemberScore[string]], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("ZPOPMIN", key))
	if err != nil {
		return models.NilOf[models.MemberScore[string]](), err
	}
	res, err := normalize.ScoredEntry(reply, normalize.Text)
	return observe(c, "ZPopMin", res, err)
}

// ZPopMax removes and returns the highest-scored member.
func (c *Client) ZPopMax(ctx context.Context, key string) (models.Result[models.MemberScore[string]], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("ZPOPMAX", key))
	if err != nil {
		return models.NilOf[models.MemberScore[string]](), err
	}
	res, err := normalize.ScoredEntry(reply, normalize.Text)
	return observe(c, "ZPopMax", res, err)
}

// ZPopMinBytes is the binary form of ZPopMin.
func (c *Client) ZPopMinBytes(ctx context.Context, key []byte) (models.Result[models.MemberScore[[]byte]], error) {
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("ZPOPMIN", key))
	if err != nil {
		return models.NilOf[models.MemberScore[[]byte]](), err
	}
	res, err := normalize.ScoredEntry(reply, normalize.Bytes)
	return observe(c, "ZPopMinBytes", res, err)
}

// ZPopMaxBytes is the binary form of ZPopMax.
func (c *Client) ZPopMaxBytes(ctx context.Context, key []byte) (models.Result[models.MemberScore[[]byte]], error) {
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("ZPOPMAX", key))
	if err != nil {
		return models.NilOf[models.MemberScore[[]byte]](), err
	}
	res, err := normalize.ScoredEntry(reply, normalize.Bytes)
	return observe(c, "ZPopMaxBytes", res, err)
}

// ZRandMemberWithScores returns count random members with their scores,
// in the order the server produced them.
func (c *Client) ZRandMemberWithScores(ctx context.Context, key string, count int64) ([]models.MemberScore[string], error) {
	reply, err := c.exec(ctx, protocol.NewCommand("ZRANDMEMBER", key, formatInt(count), "WITHSCORES"))
	if err != nil {
		return nil, err
	}
	res, err := normalize.ScoreMap(reply, normalize.Text)
	return observe(c, "ZRandMemberWithScores", res, err)
}

// ZRandMemberWithScoresBytes is the binary form of
// ZRandMemberWithScores.
func (c *Client) ZRandMemberWithScoresBytes(ctx context.Context, key []byte, count int64) ([]models.MemberScore[[]byte], error) {
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("ZRANDMEMBER", key, []byte(formatInt(count)), []byte("WITHSCORES")))
	if err != nil {
		return nil, err
	}
	res, err := normalize.ScoreMap(reply, normalize.Bytes)
	return observe(c, "ZRandMemberWithScoresBytes", res, err)
}

// ZMPop pops up to count scored members from the first non-empty of
// keys. Absent means nothing was popped under either wire shape.
func (c *Client) ZMPop(ctx context.Context, direction string, count int64, keys ...string) (models.Result[models.KeyMembers[string]], error) {
	args := popArgs(direction, count, keys)
	reply, err := c.exec(ctx, protocol.NewCommand("ZMPOP", args...))
	if err != nil {
		return models.NilOf[models.KeyMembers[string]](), err
	}
	res, err := normalize.ScoredPop(reply, normalize.Text)
	return observe(c, "ZMPop", res, err)
}

// ZMPopBytes is the binary form of ZMPop.
func (c *Client) ZMPopBytes(ctx context.Context, direction string, count int64, keys ...[]byte) (models.Result[models.KeyMembers[[]byte]], error) {
	args := popArgsBytes(direction, count, keys)
	reply, err := c.exec(ctx, protocol.NewBinaryCommand("ZMPOP", args...))
	if err != nil {
		return models.NilOf[models.KeyMembers[[]byte]](), err
	}
	res, err := normalize.ScoredPop(reply, normalize.Bytes)
	return observe(c, "ZMPopBytes", res, err)
}
