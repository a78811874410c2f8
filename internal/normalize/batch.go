package normalize

import (
	"fmt"
	"strings"

	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
)

// PostProcess normalizes the reply list of a batch or transaction. The
// command names and raw replies must align positionally; a length
// mismatch means the pipeline lost sync and is a hard error, never a
// best-effort partial result. A nil reply slot (a command aborted
// inside a failed transaction) passes through as a nil value. INFO
// replies get their legacy text fixup; everything else materializes
// through Any under the supplied intent.
//
// A nil reply list signals an aborted transaction and passes through
// as nil without post-processing.
func PostProcess(names []string, replies []protocol.Reply, intent Intent) ([]any, error) {
	if replies == nil {
		return nil, nil
	}
	if len(names) != len(replies) {
		return nil, fmt.Errorf("batch returned %d replies for %d commands: %w",
			len(replies), len(names), ErrMalformed)
	}
	out := make([]any, len(replies))
	for i, r := range replies {
		if r == nil || r.Kind() == protocol.KindNil {
			out[i] = nil
			continue
		}
		if strings.EqualFold(names[i], "INFO") {
			text, err := FormatInfo(r)
			if err != nil {
				return nil, fmt.Errorf("batch index %d (%s): %w", i, names[i], err)
			}
			out[i] = text
			continue
		}
		value, err := Any(r, intent)
		if err != nil {
			return nil, fmt.Errorf("batch index %d (%s): %w", i, names[i], err)
		}
		out[i] = value
	}
	return out, nil
}
