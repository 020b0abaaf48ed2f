package store

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Signature returns a content hash of the board's task tree. Saves and
// external-change reloads compare signatures to skip no-op work.
func (b *Board) Signature() uint64 {
	if b == nil {
		return 0
	}
	raw, err := json.Marshal(b.Tasks)
	if err != nil {
		// Tasks are plain data; marshaling cannot realistically fail. Treat a
		// failure as "always dirty".
		return 0
	}
	h := xxhash.New()
	_, _ = fmt.Fprintf(h, "v%d:", b.Version)
	_, _ = h.Write(raw)
	return h.Sum64()
}

func formatSignature(sig uint64) string {
	return fmt.Sprintf("%016x", sig)
}
