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


package session

import "errors"

var (
	// ErrStoreRequired is returned when a snippet repository is not provided.
	ErrStoreRequired = errors.New("snippet repository required")

	// ErrFetcherRequired is returned when a fetcher is not provided.
	ErrFetcherRequired = errors.New("fetcher required")

	// ErrViewRequired is returned when a view is not provided.
	ErrViewRequired = errors.New("view required")

	// ErrNothingPending is returned by Wait when no fetch is in flight.
	ErrNothingPending = errors.New("no fetch in flight")
)
