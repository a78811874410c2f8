package transport

import (
	"bytes"
	"strconv"

	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
)

// EncodeCommand frames a command as an array of bulk strings. Bulk
// strings are length-prefixed, so any byte sequence is safe: values
// with spaces, newlines or raw binary need no quoting.
func EncodeCommand(cmd protocol.Command) []byte {
	var buf bytes.Buffer
	buf.WriteByte('*')
	buf.WriteString(strconv.Itoa(1 + len(cmd.Args)))
	buf.WriteString("\r\n")
	writeBulk(&buf, []byte(cmd.Name))
	for _, arg := range cmd.Args {
		writeBulk(&buf, arg.ArgBytes())
	}
	return buf.Bytes()
}

func writeBulk(buf *bytes.Buffer, b []byte) {
	buf.WriteByte('$')
	buf.WriteString(strconv.Itoa(len(b)))
	buf.WriteString("\r\n")
	buf.Write(b)
	buf.WriteString("\r\n")
}
