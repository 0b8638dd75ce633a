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

package server

import (
	"io/fs"
	"os"
	"testing"

	billy "github.com/go-git/go-billy/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	nfsfile "github.com/willscott/go-nfs/file"

	"mocktree/internal/common"
	"mocktree/internal/tree"
)

var _ billy.Filesystem = (*BillyAdapter)(nil)

func projectTree(t *testing.T) tree.Resolver {
	t.Helper()
	resolve, err := tree.New().
		Directory("/Users/localuser/project").
		Mark("proj").
		Directory("locator/").
		Files("a.txt", "b.txt").
		Restore("proj").
		Directory("target/").
		Files("a.txt", "b.txt", "a.txt").
		Cwd("/Users/localuser/project/target").
		Build()
	require.NoError(t, err)
	return resolve
}

func names(infos []os.FileInfo) []string {
	var out []string
	for _, fi := range infos {
		out = append(out, fi.Name())
	}
	return out
}

func TestBillyStat(t *testing.T) {
	b := NewBillyAdapter(projectTree(t))

	tests := []struct {
		name    string
		path    string
		dir     bool
		base    string
		missing bool
	}{
		{"export_root_empty", "", true, "/", false},
		{"export_root_slash", "/", true, "/", false},
		{"relative_dir", "Users/localuser", true, "localuser", false},
		{"absolute_file", "/Users/localuser/project/target/a.txt", false, "a.txt", false},
		{"missing", "Users/other", false, "", true},
		{"missing_under_file", "Users/localuser/project/target/a.txt/x", false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fi, err := b.Stat(tt.path)
			if tt.missing {
				assert.ErrorIs(t, err, fs.ErrNotExist)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.base, fi.Name())
			assert.Equal(t, tt.dir, fi.IsDir())
			assert.Zero(t, fi.Size())
		})
	}
}

func TestBillyStatDoesNotUseWorkingDirectory(t *testing.T) {
	b := NewBillyAdapter(projectTree(t))

	// a.txt exists relative to the working directory but not at the export root
	_, err := b.Lstat("a.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestBillyReadDir(t *testing.T) {
	b := NewBillyAdapter(projectTree(t))

	root, err := b.ReadDir("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Users"}, names(root))

	proj, err := b.ReadDir("Users/localuser/project")
	require.NoError(t, err)
	assert.Equal(t, []string{"locator", "target"}, names(proj))

	target, err := b.ReadDir("/Users/localuser/project/target")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, names(target))

	_, err = b.ReadDir("Users/localuser/project/target/a.txt")
	assert.ErrorIs(t, err, common.ErrNotDir)

	_, err = b.ReadDir("nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestBillyReadDirSkipsHiddenNodes(t *testing.T) {
	resolve := projectTree(t)
	b := NewBillyAdapter(resolve)

	resolve("/Users/localuser/project/locator/b.txt").SetExists(false)

	entries, err := b.ReadDir("Users/localuser/project/locator")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, names(entries))
}

func TestBillyReadDirSkipsEmptyNames(t *testing.T) {
	resolve, err := tree.New().Directory("/d").File("").File("x").Cwd("/d").Build()
	require.NoError(t, err)
	b := NewBillyAdapter(resolve)

	entries, err := b.ReadDir("d")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, names(entries))
}

func TestBillyReadOnly(t *testing.T) {
	b := NewBillyAdapter(projectTree(t))

	_, err := b.Create("new.txt")
	assert.ErrorIs(t, err, common.ErrReadOnly)

	_, err = b.OpenFile("Users", os.O_RDWR, 0)
	assert.ErrorIs(t, err, common.ErrReadOnly)

	_, err = b.Open("Users/localuser/project/target/a.txt")
	assert.ErrorIs(t, err, common.ErrNoContent)

	_, err = b.Open("Users/localuser/project/target/zz.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	assert.ErrorIs(t, b.Remove("Users"), common.ErrReadOnly)
	assert.ErrorIs(t, b.Rename("Users", "People"), common.ErrReadOnly)
	assert.ErrorIs(t, b.MkdirAll("x/y", 0755), common.ErrReadOnly)
	assert.ErrorIs(t, b.Symlink("Users", "link"), common.ErrReadOnly)

	_, err = b.TempFile("", "tmp")
	assert.ErrorIs(t, err, common.ErrReadOnly)

	var pathErr *os.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "tempfile", pathErr.Op)

	assert.Equal(t, billy.ReadCapability, b.Capabilities())
}

func TestBillyChroot(t *testing.T) {
	b := NewBillyAdapter(projectTree(t))

	sub, err := b.Chroot("Users/localuser/project")
	require.NoError(t, err)

	entries, err := sub.ReadDir("target")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, names(entries))

	_, err = b.Chroot("Users/localuser/project/target/a.txt")
	assert.ErrorIs(t, err, common.ErrNotDir)

	_, err = b.Chroot("missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileInfo(t *testing.T) {
	resolve := projectTree(t)
	b := NewBillyAdapter(resolve)

	dir, err := b.Stat("Users/localuser/project/target")
	require.NoError(t, err)
	assert.Equal(t, os.ModeDir|0555, dir.Mode())

	file, err := b.Stat("Users/localuser/project/target/a.txt")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0444), file.Mode())

	sys, ok := file.Sys().(*nfsfile.FileInfo)
	require.True(t, ok)
	assert.Equal(t, resolve("a.txt").Inode(), sys.Fileid)
	assert.Equal(t, uint32(1), sys.Nlink)
	assert.Equal(t, uint32(os.Getuid()), sys.UID)

	assert.Same(t, resolve("/Users/localuser/project/target/a.txt"), file.(*FileInfo).Node())
	assert.Contains(t, file.(*FileInfo).String(), "/Users/localuser/project/target/a.txt")
}
