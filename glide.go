// Package glide is a Valkey client library focused on faithful result
// typing: every reply coming off the wire is normalized into a
// canonical Go shape before the caller sees it, with strict text
// validation on the string API and byte-exact passthrough on the binary
// API.
//
// Each logical operation has two entry points: Xxx works in validated
// UTF-8 strings and XxxBytes works in raw bytes. Both run the same
// shape resolver; only the leaf materialization differs.
package glide

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-glide-sub004/internal/codec"
	"github.com/valkey-io/valkey-glide-sub004/internal/normalize"
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/internal/transport"
)

// Diagnostics receives normalization outcomes. Implementations must be
// safe for concurrent use; the no-op default drops everything.
type Diagnostics = normalize.Diagnostics

// commandObserver is implemented by diagnostics sinks that also want
// per-command timing, such as the Prometheus observer.
type commandObserver interface {
	CommandExecuted(cmd string, elapsed time.Duration)
}

// Options configures a Client.
type Options struct {
	Addr     string
	Username string
	Password string
	// UseRESP3 negotiates the newer protocol after connecting. The
	// normalized results are identical either way.
	UseRESP3       bool
	DialTimeout    time.Duration
	RequestTimeout time.Duration
	// Codec names an optional value codec ("snappy", "gzip", "base64")
	// applied to payloads on the binary API: encoded on write, decoded on
	// read. Text-API payloads are never transformed.
	Codec string
	// Diagnostics receives normalization outcomes. Nil means none.
	Diagnostics Diagnostics
}

// Client is a Valkey client over a single connection. All methods are
// safe for concurrent use; normalization itself is stateless and the
// transport serializes wire access.
type Client struct {
	transport transport.CommandTransport
	diag      Diagnostics
	codec     codec.Codec
}

// New connects to the server and returns a ready client.
func New(ctx context.Context, opts Options) (*Client, error) {
	t, err := transport.Dial(ctx, transport.Options{
		Addr:        opts.Addr,
		Username:    opts.Username,
		Password:    opts.Password,
		UseRESP3:    opts.UseRESP3,
		DialTimeout: opts.DialTimeout,
		ReadTimeout: opts.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}
	c, err := newClient(t, opts)
	if err != nil {
		t.Close()
		return nil, err
	}
	return c, nil
}

func newClient(t transport.CommandTransport, opts Options) (*Client, error) {
	c := &Client{
		transport: t,
		diag:      opts.Diagnostics,
	}
	if c.diag == nil {
		c.diag = normalize.Discard
	}
	if opts.Codec != "" {
		cd, err := codec.Get(opts.Codec)
		if err != nil {
			return nil, err
		}
		c.codec = cd
	}
	return c, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.transport.Close()
}

func (c *Client) exec(ctx context.Context, cmd protocol.Command) (protocol.Reply, error) {
	start := time.Now()
	reply, err := c.transport.Execute(ctx, cmd)
	if obs, ok := c.diag.(commandObserver); ok {
		obs.CommandExecuted(cmd.Name, time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return reply, nil
}

// observe reports a normalization outcome and passes the result through.
func observe[T any](c *Client, op string, val T, err error) (T, error) {
	if err != nil {
		c.diag.NormalizationFailed(op, normalize.ErrorKind(err))
		return val, fmt.Errorf("%s: %w", op, err)
	}
	c.diag.ReplyNormalized(op)
	return val, nil
}

// Ping checks the connection.
func (c *Client) Ping(ctx context.Context) (string, error) {
	reply, err := c.exec(ctx, protocol.NewCommand("PING"))
	if err != nil {
		return "", err
	}
	res, err := normalize.Text(reply)
	res2, err := observe(c, "Ping", res, err)
	return res2.Value(), err
}

// Info returns the server's INFO payload in its legacy text form, with
// the newer map framing reformatted into "# Section" and "key:value"
// lines.
func (c *Client) Info(ctx context.Context, sections ...string) (string, error) {
	reply, err := c.exec(ctx, protocol.NewCommand("INFO", sections...))
	if err != nil {
		return "", err
	}
	text, err := normalize.FormatInfo(reply)
	return observe(c, "Info", text, err)
}

// InfoByNode splits a cluster-routed INFO reply into one legacy text
// payload per node address.
func (c *Client) InfoByNode(ctx context.Context, sections ...string) (map[string]string, error) {
	reply, err := c.exec(ctx, protocol.NewCommand("INFO", sections...))
	if err != nil {
		return nil, err
	}
	nodes, err := normalize.FormatClusterInfo(reply)
	return observe(c, "InfoByNode", nodes, err)
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// encodeValue applies the configured codec to a binary payload.
func (c *Client) encodeValue(value []byte) ([]byte, error) {
	if c.codec == nil {
		return value, nil
	}
	encoded, err := c.codec.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("codec encode: %w", err)
	}
	return encoded, nil
}

// decodeValue reverses the configured codec on a binary payload.
func (c *Client) decodeValue(value []byte) ([]byte, error) {
	if c.codec == nil {
		return value, nil
	}
	decoded, err := c.codec.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("codec decode: %w", err)
	}
	return decoded, nil
}
