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

import "errors"

// Domain validation errors
var (
	// ErrInvalidResponse indicates a result payload failed validation.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrMissingQuery indicates the payload carries no query field.
	ErrMissingQuery = errors.New("query is missing")

	// ErrMissingResults indicates the payload carries neither snippets nor clusters.
	ErrMissingResults = errors.New("snippets and clusters are both missing")

	// ErrInvalidSnippet indicates a snippet failed validation.
	ErrInvalidSnippet = errors.New("invalid snippet")

	// ErrMissingIdentity indicates a snippet has neither an id nor a url.
	ErrMissingIdentity = errors.New("snippet has neither id nor url")

	// ErrInvalidVertical indicates an unknown vertical name.
	ErrInvalidVertical = errors.New("invalid vertical")
)
