package badger

import (
	"encoding/binary"

	"github.com/poiesic/seekr/core"
)

const (
	snippetPrefix      = "snip:"
	snippetOrderPrefix = "snipord:"
	snippetSeq         = "snipseq"
)

// makeSnippetKey generates a key for a snippet by ID.
func makeSnippetKey(id core.ID) []byte {
	return []byte(snippetPrefix + string(id))
}

// makeSnippetOrderKey generates a key for the insertion-order index.
// Format: prefix + 8-byte big-endian sequence
func makeSnippetOrderKey(seq uint64) []byte {
	prefixBytes := []byte(snippetOrderPrefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}
