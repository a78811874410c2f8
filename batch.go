package glide

import (
	"context"

	"github.com/valkey-io/valkey-glide-sub004/internal/normalize"
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
)

// Batch accumulates commands to be pipelined in one round trip.
// A Batch is not safe for concurrent use while being built.
type Batch struct {
	cmds []protocol.Command
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Add appends a command of text arguments.
func (b *Batch) Add(name string, args ...string) *Batch {
	b.cmds = append(b.cmds, protocol.NewCommand(name, args...))
	return b
}

// AddBinary appends a command of raw byte arguments.
func (b *Batch) AddBinary(name string, args ...[]byte) *Batch {
	b.cmds = append(b.cmds, protocol.NewBinaryCommand(name, args...))
	return b
}

// Len reports the number of queued commands.
func (b *Batch) Len() int {
	return len(b.cmds)
}

// Exec pipelines the batch and post-processes the reply list: one value
// per command in order, a nil slot where a command's reply was nil (for
// example inside an aborted transaction), INFO replies reformatted to
// legacy text, and a hard error if the server returned a different
// number of replies than commands were sent. If any command drew a
// server error, the first such error is returned and no values are.
func (c *Client) Exec(ctx context.Context, b *Batch) ([]any, error) {
	return c.execBatch(ctx, b, normalize.IntentText)
}

// ExecBytes is the binary form of Exec: bulk payloads materialize as
// []byte and are never validated.
func (c *Client) ExecBytes(ctx context.Context, b *Batch) ([]any, error) {
	return c.execBatch(ctx, b, normalize.IntentBinary)
}

func (c *Client) execBatch(ctx context.Context, b *Batch, intent normalize.Intent) ([]any, error) {
	replies, errs, err := c.transport.Pipeline(ctx, b.cmds)
	if err != nil {
		return nil, err
	}
	for _, cmdErr := range errs {
		if cmdErr != nil {
			return nil, cmdErr
		}
	}
	names := make([]string, len(b.cmds))
	for i, cmd := range b.cmds {
		names[i] = cmd.Name
	}
	values, err := normalize.PostProcess(names, replies, intent)
	return observe(c, "Exec", values, err)
}
