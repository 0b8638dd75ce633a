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
	"strings"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <fixture> <path>...",
	Short: "Show what the resolver returns for paths",
	Long: `Resolve each path against the tree declared by a fixture and show the node
facts: absolute path, type, existence, inode and children.

A declared name (such as a.txt or locator) resolves to its most recent
declaration. Other relative paths are joined to the fixture's working
directory; ".." is an ordinary name. Paths that were never declared still
resolve, to nodes that do not exist.

Examples:
  mocktree resolve mocktree.yaml .
  mocktree resolve mocktree.yaml e.txt locator /Users/localuser/project/locator/a.txt`,
	Args: cobra.MinimumNArgs(2),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	resolve, _, err := loadTree(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, p := range args[1:] {
		if i > 0 {
			fmt.Fprintln(out)
		}
		n := resolve(p)

		fmt.Fprintf(out, "%s %s\n", label("Path"), p)
		fmt.Fprintf(out, "%s %s\n", label("Absolute"), n.AbsolutePath())
		fmt.Fprintf(out, "%s %s\n", label("Type"), n.Type())
		if n.Exists() {
			fmt.Fprintf(out, "%s %s\n", label("Exists"), successStyle.Render("yes"))
		} else {
			fmt.Fprintf(out, "%s %s\n", label("Exists"), missingStyle.Render("no"))
		}
		fmt.Fprintf(out, "%s %d\n", label("Inode"), n.Inode())
		if n.IsDir() && n.Exists() {
			fmt.Fprintf(out, "%s %s\n", label("Children"), strings.Join(n.List(), " "))
		}
	}
	return nil
}
