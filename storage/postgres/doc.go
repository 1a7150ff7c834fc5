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


// Package postgres implements the storage repositories on PostgreSQL with
// the pgvector extension.
//
// Similarity search runs inside the database using the cosine distance
// operator, with creator filters pushed into the same query so ranking
// always covers the eligible population. It is the production alternative to
// the embedded BadgerDB backend; both satisfy the same repository
// interfaces.
package postgres
