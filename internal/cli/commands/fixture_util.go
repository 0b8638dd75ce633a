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

package commands

import (
	"fmt"

	"mocktree/internal/config"
	"mocktree/internal/fixture"
	"mocktree/internal/tree"
)

// loadTree reads the fixture at path, or the named fixture in the config
// directory, and builds it.
func loadTree(path string) (tree.Resolver, *fixture.Fixture, error) {
	path = config.FindFixture(path)
	f, err := fixture.Load(path)
	if err != nil {
		return nil, nil, err
	}
	resolve, _, err := f.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return resolve, f, nil
}
