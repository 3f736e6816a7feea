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


// Package render projects session state onto a results page.
//
// The Renderer is a pure projection: it reads a State snapshot and writes
// markup and control state into a Document by logical role. It never reads
// back from the Document, so rendering the same State twice leaves the
// Document unchanged.
//
// Snippets are turned into a view model first (sanitized title and summary,
// engine badges, similar links, click-capture URLs) and then substituted
// into the html/template set of the active vertical. Two themes are
// provided:
//
//   - ThemeOriginal highlights query words and snippet words in summaries
//     and writes a plain on/off personalization flag.
//   - ThemeCompact skips highlighting, mirrors page controls at the top of
//     the page and shows personalization as a star icon.
//
// Terminal renders the same State as markdown through glamour for the
// command-line front end.
package render
