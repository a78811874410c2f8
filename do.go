package glide

import (
	"context"
	"strings"

	"github.com/valkey-io/valkey-glide-sub004/internal/normalize"
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
)

// Do executes an arbitrary command and returns its reply as a dynamic
// value: nil, string, int64, float64, []any for arrays and sets, or
// [][2]any for maps in server order. Text payloads are validated; use
// DoBytes for keys or values holding raw bytes.
//
// INFO replies are reformatted into their legacy text form regardless
// of the negotiated protocol.
func (c *Client) Do(ctx context.Context, name string, args ...string) (any, error) {
	reply, err := c.exec(ctx, protocol.NewCommand(name, args...))
	if err != nil {
		return nil, err
	}
	return c.normalizeDynamic(name, reply, normalize.IntentText)
}

// DoBytes is the binary form of Do: bulk payloads come back as []byte
// and are never validated.
func (c *Client) DoBytes(ctx context.Context, name string, args ...[]byte) (any, error) {
	reply, err := c.exec(ctx, protocol.NewBinaryCommand(name, args...))
	if err != nil {
		return nil, err
	}
	return c.normalizeDynamic(name, reply, normalize.IntentBinary)
}

func (c *Client) normalizeDynamic(name string, reply protocol.Reply, intent normalize.Intent) (any, error) {
	op := strings.ToUpper(name)
	if op == "INFO" {
		text, err := normalize.FormatInfo(reply)
		return observe(c, op, any(text), err)
	}
	val, err := normalize.Any(reply, intent)
	return observe(c, op, val, err)
}
