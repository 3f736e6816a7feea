// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/poiesic/seekr/core"
)

// seqSize is the width of the insertion sequence prefix on stored values.
const seqSize = 8

// MarshalSnippet serializes a snippet together with its insertion sequence.
// Layout: 8-byte big-endian sequence followed by the JSON-encoded snippet.
func MarshalSnippet(seq uint64, snippet *core.Snippet) ([]byte, error) {
	body, err := json.Marshal(snippet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	buf := make([]byte, seqSize+len(body))
	binary.BigEndian.PutUint64(buf, seq)
	copy(buf[seqSize:], body)
	return buf, nil
}

// UnmarshalSnippet deserializes a value written by MarshalSnippet.
func UnmarshalSnippet(data []byte) (uint64, *core.Snippet, error) {
	if len(data) <= seqSize {
		return 0, nil, ErrTruncatedData
	}
	seq := binary.BigEndian.Uint64(data[:seqSize])
	var snippet core.Snippet
	if err := json.Unmarshal(data[seqSize:], &snippet); err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return seq, &snippet, nil
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	return []byte(id)
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	if len(data) == 0 {
		return "", ErrTruncatedData
	}
	return core.ID(data), nil
}
