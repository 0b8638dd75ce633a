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

// FileType distinguishes directories from plain files.
type FileType int

const (
	FileTypeFile FileType = iota
	FileTypeDirectory
)

func (t FileType) String() string {
	if t == FileTypeDirectory {
		return "directory"
	}
	return "file"
}

// record is the state shared by every handle of one absolute location.
type record struct {
	ino      uint64
	exists   bool
	children []string
}

// Node is one entry of the virtual tree.
type Node struct {
	path   string // literal text the handle was created with
	parent *Node
	dir    bool
	abs    string // memoized absolute path
	self   *Node  // canonical handle for abs
	rec    *record
}

// Path returns the literal path this node was declared or queried with.
func (n *Node) Path() string { return n.path }

// Name returns the last component of the node's path.
func (n *Node) Name() string { return common.BaseName(n.path) }

// Parent returns the owning directory, or nil for root-level nodes.
func (n *Node) Parent() *Node { return n.parent }

func (n *Node) Exists() bool { return n.rec.exists }
func (n *Node) IsDir() bool  { return n.dir }
func (n *Node) IsFile() bool { return !n.dir }

func (n *Node) Type() FileType {
	if n.dir {
		return FileTypeDirectory
	}
	return FileTypeFile
}

// Inode returns a number identifying the node's location within its tree.
func (n *Node) Inode() uint64 { return n.rec.ino }

// SetExists changes existence for every handle of this location.
func (n *Node) SetExists(exists bool) { n.rec.exists = exists }

// AbsoluteNode returns the canonical node for this node's absolute path.
func (n *Node) AbsoluteNode() *Node { return n.self }

// AbsolutePath returns the normalized path from the root. It is computed on
// first use and never changes afterwards.
func (n *Node) AbsolutePath() string {
	if n.abs == "" {
		switch {
		case common.IsAbs(n.path) || n.parent == nil:
			n.abs = common.NormalizeAbs(n.path)
		default:
			n.abs = common.JoinPath(n.parent.AbsolutePath(), n.Name())
		}
	}
	return n.abs
}

// List returns the names declared directly under this node, in declaration
// order. Names declared twice appear twice.
func (n *Node) List() []string {
	names := make([]string, len(n.rec.children))
	copy(names, n.rec.children)
	return names
}

func (n *Node) String() string { return n.AbsolutePath() }
