// Package transport frames commands onto a server connection and
// decodes the raw replies coming back. It stops at the reply model:
// interpreting a reply's shape belongs to the normalization layer.
package transport

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
)

// CommandTransport executes framed commands and returns decoded
// replies. Implementations must be safe for concurrent use.
type CommandTransport interface {
	Execute(ctx context.Context, cmd protocol.Command) (protocol.Reply, error)
	// Pipeline sends the commands back to back and reads one reply per
	// command, preserving order. A server error in slot i is returned in
	// errs[i]; transport failures abort the whole pipeline.
	Pipeline(ctx context.Context, cmds []protocol.Command) ([]protocol.Reply, []error, error)
	Close() error
}

// Options configures a TCP transport.
type Options struct {
	Addr     string
	Username string
	Password string
	// UseRESP3 upgrades the connection with HELLO 3 after connecting.
	UseRESP3    bool
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

// TCPTransport is a CommandTransport over a single TCP connection.
// A mutex serializes request/reply cycles; the reply decoder itself
// holds no state between calls.
type TCPTransport struct {
	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	opts   Options
}

// Dial connects and performs authentication and protocol negotiation.
func Dial(ctx context.Context, opts Options) (*TCPTransport, error) {
	dialer := net.Dialer{Timeout: opts.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", opts.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Addr, err)
	}

	t := &TCPTransport{
		conn:   conn,
		reader: bufio.NewReader(conn),
		opts:   opts,
	}

	if err := t.handshake(ctx); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}

func (t *TCPTransport) handshake(ctx context.Context) error {
	if t.opts.UseRESP3 {
		args := []string{"3"}
		if t.opts.Password != "" {
			user := t.opts.Username
			if user == "" {
				user = "default"
			}
			args = append(args, "AUTH", user, t.opts.Password)
		}
		if _, err := t.Execute(ctx, protocol.NewCommand("HELLO", args...)); err != nil {
			return fmt.Errorf("protocol negotiation failed: %w", err)
		}
		return nil
	}

	if t.opts.Password != "" {
		cmd := protocol.NewCommand("AUTH", t.opts.Password)
		if t.opts.Username != "" {
			cmd = protocol.NewCommand("AUTH", t.opts.Username, t.opts.Password)
		}
		reply, err := t.Execute(ctx, cmd)
		if err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
		if status, ok := reply.(protocol.Status); !ok || status.Value != "OK" {
			return fmt.Errorf("unexpected AUTH reply: %v", reply)
		}
	}
	return nil
}

// Execute sends one command and reads its reply. A server error reply
// is returned as a *ServerError.
func (t *TCPTransport) Execute(ctx context.Context, cmd protocol.Command) (protocol.Reply, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.setDeadline(ctx); err != nil {
		return nil, err
	}
	if _, err := t.conn.Write(EncodeCommand(cmd)); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", cmd.Name, err)
	}
	reply, err := DecodeReply(t.reader)
	if err != nil {
		return nil, err
	}
	return reply, nil
}

func (t *TCPTransport) Pipeline(ctx context.Context, cmds []protocol.Command) ([]protocol.Reply, []error, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.setDeadline(ctx); err != nil {
		return nil, nil, err
	}
	var buf []byte
	for _, cmd := range cmds {
		buf = append(buf, EncodeCommand(cmd)...)
	}
	if _, err := t.conn.Write(buf); err != nil {
		return nil, nil, fmt.Errorf("failed to send pipeline: %w", err)
	}

	replies := make([]protocol.Reply, len(cmds))
	errs := make([]error, len(cmds))
	for i := range cmds {
		reply, err := DecodeReply(t.reader)
		if err != nil {
			if _, ok := err.(*ServerError); ok {
				errs[i] = err
				continue
			}
			return nil, nil, fmt.Errorf("failed to decode pipeline reply %d: %w", i, err)
		}
		replies[i] = reply
	}
	return replies, errs, nil
}

func (t *TCPTransport) setDeadline(ctx context.Context) error {
	deadline := time.Time{}
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	} else if t.opts.ReadTimeout > 0 {
		deadline = time.Now().Add(t.opts.ReadTimeout)
	}
	if err := t.conn.SetDeadline(deadline); err != nil {
		return fmt.Errorf("failed to set deadline: %w", err)
	}
	return nil
}

// Close terminates the connection.
func (t *TCPTransport) Close() error {
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}
