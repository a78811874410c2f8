package normalize

import (
	"strings"

	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
)

// FormatInfo normalizes an INFO reply to its legacy text form. Newer
// protocol versions may deliver INFO as a map of section name to a map
// of key/value rows; that form is rebuilt into the "# Section" plus
// "key:value" lines older tooling parses. A reply already in bulk text
// passes through unchanged.
func FormatInfo(r protocol.Reply) (string, error) {
	r = UnwrapCluster(r)
	switch v := r.(type) {
	case protocol.Nil:
		return "", nil
	case protocol.Bulk:
		res, err := Text(r)
		if err != nil {
			return "", err
		}
		return res.Value(), nil
	case protocol.Status:
		return v.Value, nil
	case protocol.Map:
		var b strings.Builder
		for _, section := range v.Pairs {
			name, ok := replyText(section.Key)
			if !ok {
				return "", shapeError("format info section", section.Key.Kind())
			}
			b.WriteString("# ")
			b.WriteString(name)
			b.WriteString("\r\n")
			rows, ok := section.Value.(protocol.Map)
			if !ok {
				return "", shapeError("format info rows", section.Value.Kind())
			}
			for _, row := range rows.Pairs {
				key, ok := replyText(row.Key)
				if !ok {
					return "", shapeError("format info key", row.Key.Kind())
				}
				value, ok := replyText(row.Value)
				if !ok {
					return "", shapeError("format info value", row.Value.Kind())
				}
				b.WriteString(key)
				b.WriteString(":")
				b.WriteString(value)
				b.WriteString("\r\n")
			}
			b.WriteString("\r\n")
		}
		return b.String(), nil
	default:
		return "", shapeError("format info", r.Kind())
	}
}

// FormatClusterInfo normalizes a cluster-routed INFO reply, a map of
// node address to that node's INFO payload, formatting each node's
// payload independently.
func FormatClusterInfo(r protocol.Reply) (map[string]string, error) {
	m, ok := r.(protocol.Map)
	if !ok {
		return nil, shapeError("format cluster info", r.Kind())
	}
	out := make(map[string]string, len(m.Pairs))
	for _, pair := range m.Pairs {
		node, ok := replyText(pair.Key)
		if !ok {
			return nil, shapeError("format cluster info node", pair.Key.Kind())
		}
		text, err := FormatInfo(pair.Value)
		if err != nil {
			return nil, err
		}
		out[node] = text
	}
	return out, nil
}
