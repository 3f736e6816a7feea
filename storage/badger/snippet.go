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


package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/seekr/core"
	"github.com/poiesic/seekr/storage"
)

// SnippetRepository is the BadgerDB-backed Result Store.
type SnippetRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.SnippetRepository = (*SnippetRepository)(nil)

// NewSnippetRepository creates a new SnippetRepository.
func NewSnippetRepository(backend *Backend) (*SnippetRepository, error) {
	seq, err := backend.GetSequence(snippetSeq)
	if err != nil {
		return nil, err
	}

	return &SnippetRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the insertion sequence.
func (r *SnippetRepository) Close() error {
	return r.seq.Release()
}

// Upsert stores snippets keyed by id.
func (r *SnippetRepository) Upsert(ctx context.Context, snippets ...*core.Snippet) (int, error) {
	added := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, snippet := range snippets {
			if err := ctx.Err(); err != nil {
				return err
			}
			if snippet == nil || snippet.ID == "" {
				return core.ErrMissingIdentity
			}

			key := makeSnippetKey(snippet.ID)
			seq, found, err := r.readSequence(tx, key)
			if err != nil {
				return err
			}
			if !found {
				seq, err = r.nextSequence()
				if err != nil {
					return err
				}
				if err := tx.Set(makeSnippetOrderKey(seq), storage.MarshalID(snippet.ID)); err != nil {
					return err
				}
				added++
			}

			value, err := storage.MarshalSnippet(seq, snippet)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}
	return added, nil
}

// Get retrieves a single snippet by id.
func (r *SnippetRepository) Get(ctx context.Context, id core.ID) (*core.Snippet, error) {
	var result *core.Snippet
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readSnippet(tx, makeSnippetKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// All returns every stored snippet in first-insertion order.
func (r *SnippetRepository) All(ctx context.Context) ([]*core.Snippet, error) {
	var results []*core.Snippet
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(snippetOrderPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var id core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			snippet, err := r.readSnippet(tx, makeSnippetKey(id))
			if err != nil {
				return err
			}
			// Skip dangling index entries
			if snippet == nil {
				continue
			}
			results = append(results, snippet)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Count returns the number of distinct snippets stored.
func (r *SnippetRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return r.backend.CountPrefix(snippetPrefix)
}

// Clear removes every stored snippet and its ordering index.
func (r *SnippetRepository) Clear(ctx context.Context) error {
	return r.backend.DeletePrefix(ctx, snippetPrefix, snippetOrderPrefix)
}

// nextSequence returns the next insertion sequence, skipping the zero value
// BadgerDB sequences hand out first.
func (r *SnippetRepository) nextSequence() (uint64, error) {
	next, err := r.seq.Next()
	if err != nil {
		return 0, err
	}
	if next == 0 {
		return r.seq.Next()
	}
	return next, nil
}

// readSequence returns the stored insertion sequence for key, if present.
func (r *SnippetRepository) readSequence(tx *badger.Txn, key []byte) (uint64, bool, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	var seq uint64
	err = item.Value(func(val []byte) error {
		var err error
		seq, _, err = storage.UnmarshalSnippet(val)
		return err
	})
	if err != nil {
		return 0, false, err
	}
	return seq, true, nil
}

// readSnippet reads a snippet, returning nil if it doesn't exist.
func (r *SnippetRepository) readSnippet(tx *badger.Txn, key []byte) (*core.Snippet, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snippet *core.Snippet
	err = item.Value(func(val []byte) error {
		var err error
		_, snippet, err = storage.UnmarshalSnippet(val)
		return err
	})
	return snippet, err
}
