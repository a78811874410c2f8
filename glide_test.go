package glide

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/valkey-io/valkey-glide-sub004/internal/normalize"
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/internal/transport"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// fakeTransport replays queued replies and records the commands sent.
type fakeTransport struct {
	replies []protocol.Reply
	cmdErrs []error
	sent    []protocol.Command
	err     error
}

func (f *fakeTransport) Execute(_ context.Context, cmd protocol.Command) (protocol.Reply, error) {
	f.sent = append(f.sent, cmd)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.replies) == 0 {
		return protocol.Nil{}, nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func (f *fakeTransport) Pipeline(_ context.Context, cmds []protocol.Command) ([]protocol.Reply, []error, error) {
	f.sent = append(f.sent, cmds...)
	if f.err != nil {
		return nil, nil, f.err
	}
	replies := f.replies
	f.replies = nil
	errs := f.cmdErrs
	if errs == nil {
		errs = make([]error, len(cmds))
	}
	return replies, errs, nil
}

func (f *fakeTransport) Close() error { return nil }

func newTestClient(t *testing.T, ft *fakeTransport, opts Options) *Client {
	t.Helper()
	c, err := newClient(ft, opts)
	if err != nil {
		t.Fatalf("newClient() error = %v", err)
	}
	return c
}

func bulkReply(s string) protocol.Reply {
	return protocol.Bulk{Bytes: []byte(s)}
}

func arrayReply(items ...protocol.Reply) protocol.Reply {
	return protocol.Array{Items: items}
}

func TestGetTextAndAbsent(t *testing.T) {
	ft := &fakeTransport{replies: []protocol.Reply{bulkReply("hello"), protocol.Nil{}}}
	c := newTestClient(t, ft, Options{})

	got, err := c.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.IsNil() || got.Value() != "hello" {
		t.Errorf("Get() = %#v, want hello", got)
	}

	missing, err := c.Get(context.Background(), "gone")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !missing.IsNil() {
		t.Errorf("Get(missing) = %#v, want absent", missing)
	}
}

func TestGetRejectsBinaryPayloadOnTextAPI(t *testing.T) {
	ft := &fakeTransport{replies: []protocol.Reply{protocol.Bulk{Bytes: []byte{0xff, 0xfe}}}}
	c := newTestClient(t, ft, Options{})

	_, err := c.Get(context.Background(), "blob")
	if !errors.Is(err, normalize.ErrInvalidUTF8) {
		t.Fatalf("Get() error = %v, want ErrInvalidUTF8", err)
	}

	// The same payload is fine on the binary API.
	ft.replies = []protocol.Reply{protocol.Bulk{Bytes: []byte{0xff, 0xfe}}}
	got, err := c.GetBytes(context.Background(), []byte("blob"))
	if err != nil {
		t.Fatalf("GetBytes() error = %v", err)
	}
	if !reflect.DeepEqual(got.Value(), []byte{0xff, 0xfe}) {
		t.Errorf("GetBytes() = %v", got.Value())
	}
}

func TestSetBytesCodecRoundTrip(t *testing.T) {
	payload := []byte{0x00, 0xff, 0x10, 0x00}
	ft := &fakeTransport{replies: []protocol.Reply{protocol.Status{Value: "OK"}}}
	c := newTestClient(t, ft, Options{Codec: "snappy"})

	if _, err := c.SetBytes(context.Background(), []byte("k"), payload); err != nil {
		t.Fatalf("SetBytes() error = %v", err)
	}
	stored := ft.sent[0].Args[1].ArgBytes()
	if reflect.DeepEqual(stored, payload) {
		t.Fatal("SetBytes() sent the raw payload, codec not applied")
	}

	// Reading back through the same codec restores the original bytes.
	ft.replies = []protocol.Reply{protocol.Bulk{Bytes: stored}}
	got, err := c.GetBytes(context.Background(), []byte("k"))
	if err != nil {
		t.Fatalf("GetBytes() error = %v", err)
	}
	if !reflect.DeepEqual(got.Value(), payload) {
		t.Errorf("GetBytes() = %v, want %v", got.Value(), payload)
	}
}

func TestMGetPreservesHoles(t *testing.T) {
	ft := &fakeTransport{replies: []protocol.Reply{arrayReply(
		bulkReply("a"), protocol.Nil{}, bulkReply("c"),
	)}}
	c := newTestClient(t, ft, Options{})

	got, err := c.MGet(context.Background(), "k1", "k2", "k3")
	if err != nil {
		t.Fatalf("MGet() error = %v", err)
	}
	expected := []models.Result[string]{
		models.Of("a"),
		models.NilOf[string](),
		models.Of("c"),
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("MGet() = %#v, want %#v", got, expected)
	}
}

func TestHGetAllOrdered(t *testing.T) {
	ft := &fakeTransport{replies: []protocol.Reply{protocol.Map{Pairs: []protocol.Pair{
		{Key: bulkReply("z"), Value: bulkReply("1")},
		{Key: bulkReply("a"), Value: bulkReply("2")},
	}}}}
	c := newTestClient(t, ft, Options{})

	got, err := c.HGetAll(context.Background(), "h")
	if err != nil {
		t.Fatalf("HGetAll() error = %v", err)
	}
	expected := []models.FieldValue[string]{
		{Field: "z", Value: "1"},
		{Field: "a", Value: "2"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("HGetAll() = %#v, want %#v", got, expected)
	}
}

func TestLMPopEmptyCollapses(t *testing.T) {
	ft := &fakeTransport{replies: []protocol.Reply{
		protocol.Map{Pairs: []protocol.Pair{{Key: bulkReply("q"), Value: arrayReply()}}},
	}}
	c := newTestClient(t, ft, Options{})

	got, err := c.LMPop(context.Background(), "LEFT", 0, "q")
	if err != nil {
		t.Fatalf("LMPop() error = %v", err)
	}
	if !got.IsNil() {
		t.Errorf("LMPop() = %#v, want absent", got.Value())
	}
}

func TestXReadSentinelAbsence(t *testing.T) {
	ft := &fakeTransport{replies: []protocol.Reply{protocol.Nil{}, protocol.Nil{}}}
	c := newTestClient(t, ft, Options{})

	awaiting, err := c.XRead(context.Background(), []string{"s"}, []string{"$"})
	if err != nil {
		t.Fatalf("XRead() error = %v", err)
	}
	if !awaiting.IsNil() {
		t.Error("XRead($) nil reply should be absent")
	}

	plain, err := c.XRead(context.Background(), []string{"s"}, []string{"0-0"})
	if err != nil {
		t.Fatalf("XRead() error = %v", err)
	}
	if plain.IsNil() {
		t.Error("XRead(0-0) nil reply should be a present empty read")
	}
}

func TestXClaimBytesReadsBinaryFieldValues(t *testing.T) {
	entry := arrayReply(
		bulkReply("1-1"),
		arrayReply(bulkReply("payload"), protocol.Bulk{Bytes: []byte{0xff, 0x00}}),
	)
	ft := &fakeTransport{replies: []protocol.Reply{arrayReply(entry), arrayReply(entry)}}
	c := newTestClient(t, ft, Options{})

	if _, err := c.XClaim(context.Background(), "s", "g", "c1", 0, "1-1"); !errors.Is(err, normalize.ErrInvalidUTF8) {
		t.Fatalf("XClaim() error = %v, want ErrInvalidUTF8", err)
	}

	got, err := c.XClaimBytes(context.Background(), []byte("s"), "g", "c1", 0, "1-1")
	if err != nil {
		t.Fatalf("XClaimBytes() error = %v", err)
	}
	expected := []models.StreamEntry[[]byte]{{
		ID: []byte("1-1"),
		Fields: []models.FieldValue[[]byte]{
			{Field: []byte("payload"), Value: []byte{0xff, 0x00}},
		},
	}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("XClaimBytes() = %#v, want %#v", got, expected)
	}
}

func TestXReadGroupBytesReadsBinaryFieldValues(t *testing.T) {
	entry := arrayReply(
		bulkReply("2-0"),
		arrayReply(bulkReply("blob"), protocol.Bulk{Bytes: []byte{0xfe, 0xff}}),
	)
	reply := arrayReply(arrayReply(bulkReply("s"), arrayReply(entry)))
	ft := &fakeTransport{replies: []protocol.Reply{reply}}
	c := newTestClient(t, ft, Options{})

	got, err := c.XReadGroupBytes(context.Background(), "g", "c1", [][]byte{[]byte("s")}, []string{">"})
	if err != nil {
		t.Fatalf("XReadGroupBytes() error = %v", err)
	}
	if got.IsNil() {
		t.Fatal("XReadGroupBytes() = absent, want one stream read")
	}
	reads := got.Value()
	if len(reads) != 1 || len(reads[0].Entries) != 1 {
		t.Fatalf("XReadGroupBytes() = %#v, want one entry on one stream", reads)
	}
	fields := reads[0].Entries[0].Fields
	if len(fields) != 1 || !reflect.DeepEqual(fields[0].Value, []byte{0xfe, 0xff}) {
		t.Errorf("fields = %#v, want the raw binary value", fields)
	}

	sent := ft.sent[0]
	if sent.Name != "XREADGROUP" || string(sent.Args[0].ArgBytes()) != "GROUP" {
		t.Errorf("sent = %s %q, want XREADGROUP GROUP ...", sent.Name, sent.Args[0].ArgBytes())
	}
}

func TestExecBatch(t *testing.T) {
	ft := &fakeTransport{replies: []protocol.Reply{
		protocol.Status{Value: "OK"},
		protocol.Integer{Value: 3},
		nil,
	}}
	c := newTestClient(t, ft, Options{})

	b := NewBatch().
		Add("SET", "k", "v").
		Add("INCR", "n").
		Add("GET", "missing")
	got, err := c.Exec(context.Background(), b)
	if err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	expected := []any{"OK", int64(3), nil}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Exec() = %#v, want %#v", got, expected)
	}
}

func TestExecCommandErrorDiscardsValues(t *testing.T) {
	wrongType := &transport.ServerError{Message: "WRONGTYPE Operation against a key holding the wrong kind of value"}
	ft := &fakeTransport{
		replies: []protocol.Reply{protocol.Status{Value: "OK"}, nil},
		cmdErrs: []error{nil, wrongType},
	}
	c := newTestClient(t, ft, Options{})

	b := NewBatch().Add("SET", "k", "v").Add("INCR", "k")
	got, err := c.Exec(context.Background(), b)
	if got != nil {
		t.Errorf("Exec() values = %#v, want nil", got)
	}
	var srvErr *transport.ServerError
	if !errors.As(err, &srvErr) || srvErr != wrongType {
		t.Errorf("Exec() error = %v, want %v", err, wrongType)
	}
}

func TestExecLengthMismatch(t *testing.T) {
	ft := &fakeTransport{replies: []protocol.Reply{protocol.Status{Value: "OK"}}}
	c := newTestClient(t, ft, Options{})

	b := NewBatch().Add("SET", "k", "v").Add("GET", "k")
	_, err := c.Exec(context.Background(), b)
	if !errors.Is(err, normalize.ErrMalformed) {
		t.Errorf("Exec() error = %v, want ErrMalformed", err)
	}
}

// recordingDiag counts diagnostics calls, including the optional
// command-timing callback.
type recordingDiag struct {
	normalized int
	failed     int
	failKind   string
	commands   int
}

func (d *recordingDiag) ReplyNormalized(string) { d.normalized++ }
func (d *recordingDiag) NormalizationFailed(_, kind string) {
	d.failed++
	d.failKind = kind
}
func (d *recordingDiag) CommandExecuted(string, time.Duration) { d.commands++ }

func TestDiagnosticsWiring(t *testing.T) {
	diag := &recordingDiag{}
	ft := &fakeTransport{replies: []protocol.Reply{
		bulkReply("fine"),
		protocol.Bulk{Bytes: []byte{0xff}},
	}}
	c := newTestClient(t, ft, Options{Diagnostics: diag})

	if _, err := c.Get(context.Background(), "k"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, err := c.Get(context.Background(), "blob"); err == nil {
		t.Fatal("Get() on invalid text should fail")
	}

	if diag.normalized != 1 || diag.failed != 1 || diag.commands != 2 {
		t.Errorf("diag = %+v, want 1 normalized, 1 failed, 2 commands", diag)
	}
	if diag.failKind != "encoding" {
		t.Errorf("failure kind = %q, want encoding", diag.failKind)
	}
}

func TestUnknownCodecRejected(t *testing.T) {
	_, err := newClient(&fakeTransport{}, Options{Codec: "zstd"})
	if err == nil {
		t.Error("newClient() with unknown codec should fail")
	}
}

func TestInfoReformatsMapReply(t *testing.T) {
	ft := &fakeTransport{replies: []protocol.Reply{protocol.Map{Pairs: []protocol.Pair{
		{Key: bulkReply("Server"), Value: protocol.Map{Pairs: []protocol.Pair{
			{Key: bulkReply("role"), Value: bulkReply("master")},
		}}},
	}}}}
	c := newTestClient(t, ft, Options{})

	got, err := c.Info(context.Background())
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if got != "# Server\r\nrole:master\r\n\r\n" {
		t.Errorf("Info() = %q", got)
	}
}
