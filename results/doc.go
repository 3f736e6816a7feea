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


// Package results turns the Result Store into what a vertical displays.
//
// Aggregate filters the stored snippets down to the active vertical and
// either orders them into a single flat list or partitions them into
// cluster buckets. Paginate windows a flat list by page. Clustered and
// paginated display are mutually exclusive: page controls only apply to the
// flat list.
//
// Ordering is a strict total order:
//   - with personalization on, seeks_score descending comes first
//   - then seeks_meta descending
//   - then rank descending (a higher rank sorts first)
//
// Snippets equal on all keys keep their Result Store insertion order.
package results
