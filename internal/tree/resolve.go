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

package tree

import (
	"mocktree/internal/common"
)

// resolve is the Resolver returned by Build. A cache miss is not a read-only
// lookup: it creates and registers a placeholder, so the tree keeps growing
// with every new path queried.
func (b *Builder) resolve(path string) *Node {
	if path == "." {
		return b.workingNode()
	}
	if n, ok := b.lookup[path]; ok {
		return n
	}

	abs := common.Absolute(b.workingPath(), path)
	self, ok := b.canon[abs]
	if !ok {
		self = b.placeholder(abs, false)
		b.log.Tracef("[Builder.resolve] path=%q abs=%q placeholder", path, abs)
	}

	n := self
	if path != abs {
		n = &Node{
			path:   path,
			parent: self.parent,
			dir:    self.dir,
			abs:    abs,
			self:   self,
			rec:    self.rec,
		}
	}
	b.lookup[path] = n
	return n
}

func (b *Builder) workingPath() string {
	return common.NormalizeAbs(b.cwd)
}

// workingNode returns the canonical node of the working directory. A working
// directory that was never declared is synthesized as a missing directory.
func (b *Builder) workingNode() *Node {
	abs := b.workingPath()
	if n, ok := b.canon[abs]; ok {
		return n
	}
	return b.placeholder(abs, true)
}

// placeholder synthesizes a non-existent node at abs. Missing ancestors are
// synthesized as non-existent directories. Placeholders are never added to
// their parent's listing.
func (b *Builder) placeholder(abs string, dir bool) *Node {
	if n, ok := b.canon[abs]; ok {
		return n
	}

	var parent *Node
	if parentAbs := common.ParentPath(abs); parentAbs != common.Separator {
		parent = b.placeholder(parentAbs, true)
	}

	n := &Node{path: abs, parent: parent, dir: dir, abs: abs}
	n.self = n
	n.rec = b.newRecord(false)
	b.canon[abs] = n
	return n
}
