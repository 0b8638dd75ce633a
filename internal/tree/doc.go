// Copyright 2024 mocktree Authors
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

// Package tree builds in-memory directory trees that stand in for a real
// filesystem in tests.
//
// A Builder is driven through declarations (Directory, Files, Mark, Restore,
// Up, Cwd) and finalized with Build, which returns a Resolver. The Resolver
// maps path strings to Nodes and never fails: paths that were never declared
// come back as non-existent placeholders, registered so that asking again
// yields the same Node.
//
// Every absolute location has exactly one shared record holding its existence
// flag and child listing. A Node is a handle onto that record; relative and
// absolute handles of the same location therefore always agree.
//
// Builders are not safe for concurrent use.
package tree
