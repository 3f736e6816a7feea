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


package core

import (
	"fmt"
)

// ValidateResponse validates a result payload before it is applied.
//
// Validation rules:
//   - query must be present
//   - snippets or clusters must be present (an empty list is fine)
//
// NOT validated (the current session value is kept when absent):
//   - lang, expansion, suggestion, pers, engines
func ValidateResponse(resp *Response) error {
	if resp == nil {
		return fmt.Errorf("%w: response is nil", ErrInvalidResponse)
	}

	if resp.Query == nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, ErrMissingQuery)
	}

	if resp.Snippets == nil && resp.Clusters == nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, ErrMissingResults)
	}

	return nil
}

// NormalizeSnippet fills in a missing id from the snippet URL.
// A snippet with neither id nor url cannot be stored and is rejected.
func NormalizeSnippet(snippet *Snippet) error {
	if snippet == nil {
		return fmt.Errorf("%w: snippet is nil", ErrInvalidSnippet)
	}

	if snippet.ID == "" {
		if snippet.URL == "" {
			return fmt.Errorf("%w: %w", ErrInvalidSnippet, ErrMissingIdentity)
		}
		snippet.ID = IDFromURL(snippet.URL)
	}

	return nil
}
