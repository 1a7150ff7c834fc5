// Copyright 2026 Poiesic Systems
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


// Package search provides the ranking and aggregation engine for talent
// discovery.
//
// The Engine type implements a multi-stage search:
//   - Query embedding via the AI gateway
//   - Concurrent per-modality similarity retrieval with filter pushdown
//   - Score fusion per project and best-work-forward creator ranking
//   - Pagination over the ranked creator list
//
// When embedding is unavailable the engine degrades to filter-only results
// with zero scores rather than failing the request.
package search
