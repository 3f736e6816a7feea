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


// Package transport performs the asynchronous result fetches of a search
// session.
//
// A Fetcher runs each GET on an ants worker pool and reports the outcome to
// a completion callback exactly once: either a decoded response payload or
// an error. Payloads are plain JSON or JSON wrapped in a callback named by
// the correlation token the caller put in the request URL:
//
//	<token>({"query": "...", "snippets": [...]})
//
// A wrapped payload whose callback name differs from the expected token is
// rejected with ErrTokenMismatch.
package transport
