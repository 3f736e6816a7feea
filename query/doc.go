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


// Package query normalizes raw search queries and tracks the query context of
// a search session.
//
// A raw query may start with an in-query language directive of the form
// ":xx " where xx is a two-letter language code:
//
//	n := query.Normalize(":fr:hello world")
//	// n.Lang == "fr", n.Query == "hello world"
//
// The Context type carries the normalized query and language of the current
// session together with the correlation token (":<lang>+<escaped query>") that
// generated links embed.
package query
