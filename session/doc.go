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


// Package session implements the result aggregation state machine of one
// search session.
//
// A Session owns the Result Store, one VerticalState per vertical, the
// query context and the cluster assignment. User controls (Submit, Expand,
// Cluster, TogglePersonalization, SwitchVertical, Types, NextPage,
// PrevPage) mutate that state and either re-render or issue a fetch through
// Refresh.
//
// # Concurrency
//
// A Session is not safe for concurrent use. It is driven from one goroutine
// that calls the controls and applies fetch completions. Fetchers call back
// on their own goroutines; those callbacks only enqueue the outcome, which
// the owning goroutine applies with Wait or ApplyPending.
//
// Every Refresh mints a new correlation token and supersedes the request in
// flight. Completions carrying a superseded token are dropped, so a slow
// response can never overwrite the state produced by a newer one.
//
// # Failures
//
// A failed fetch, a payload rejected by core.ValidateResponse, or a Result
// Store write error renders the failure placeholder and leaves all state
// untouched.
package session
