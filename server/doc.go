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


// Package server exposes talent search over HTTP.
//
// Endpoints:
//
//	POST   /api/search           execute a search
//	GET    /api/history          list the caller's search history
//	DELETE /api/history/{id}     delete one history entry
//	DELETE /api/history          clear the caller's history
//	GET    /api/popular          most popular query clusters; ?q= probes for
//	                             the closest known query
//	GET    /health               liveness probe
//
// The caller is identified by the X-User-ID header. Search works without it
// (the search is simply not recorded); history endpoints require it.
package server
