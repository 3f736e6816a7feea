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
	"context"

	"github.com/poiesic/seekr/core"
)

// SnippetRepository is the Result Store of a search session.
// Implementations must be thread-safe and support concurrent access.
type SnippetRepository interface {
	// Upsert stores snippets keyed by id. A snippet whose id is already
	// present replaces the stored record and keeps its insertion position.
	// Snippets must carry an id (see core.NormalizeSnippet).
	// Returns the number of ids that were not present before the call.
	Upsert(ctx context.Context, snippets ...*core.Snippet) (int, error)

	// Get retrieves a single snippet by id.
	// Returns ErrNotFound if the snippet doesn't exist.
	Get(ctx context.Context, id core.ID) (*core.Snippet, error)

	// All returns every stored snippet in first-insertion order.
	All(ctx context.Context) ([]*core.Snippet, error)

	// Count returns the number of distinct snippets stored.
	Count(ctx context.Context) (int, error)

	// Clear removes every stored snippet.
	Clear(ctx context.Context) error

	// Close releases resources held by the repository.
	Close() error
}
