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


// Package popular clusters semantically similar search queries.
//
// Queries phrased differently but meaning the same thing ("cheap wedding
// photographer" vs "affordable wedding photography") land in one cluster when
// their embedding vectors are close enough. Each cluster is represented by the
// first query text observed for it. Clusters are derived state: they can be
// rebuilt at any time by replaying the history log oldest-first, and the same
// log always produces the same clusters.
package popular
