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

	"mocktree/internal/tree"
)

var (
	treeIgnore   []string
	treeNoIgnore bool
)

var treeCmd = &cobra.Command{
	Use:   "tree <fixture> [path]",
	Short: "Print a declared tree",
	Long: `Print the tree declared by a fixture, starting at path (default: the
fixture's working directory). Entries matching the fixture's ignore patterns
or --ignore are left out.

Examples:
  mocktree tree mocktree.yaml
  mocktree tree mocktree.yaml /
  mocktree tree mocktree.yaml /Users/localuser/project/locator --ignore 'c.txt'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().StringSliceVar(&treeIgnore, "ignore", nil, "Additional gitignore-style patterns to hide")
	treeCmd.Flags().BoolVar(&treeNoIgnore, "no-ignore", false, "Ignore the fixture's ignore patterns")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	resolve, f, err := loadTree(args[0])
	if err != nil {
		return err
	}

	start := "."
	if len(args) > 1 {
		start = args[1]
	}
	node := resolve(start)
	if !node.Exists() {
		return fmt.Errorf("%s: not declared in %s", node.AbsolutePath(), args[0])
	}

	var opts []tree.WalkOption
	if !treeNoIgnore {
		opts = f.WalkOptions()
	}
	opts = append(opts, tree.WithIgnore(treeIgnore...))

	out := cmd.OutOrStdout()
	return tree.Walk(node, resolve, func(n *tree.Node, depth int) error {
		if depth == 0 {
			fmt.Fprintln(out, headerStyle.Render(n.AbsolutePath()))
			return nil
		}
		indent := strings.Repeat("  ", depth-1)
		if n.IsDir() {
			fmt.Fprintln(out, indent+dirStyle.Render(n.Name()+"/"))
		} else {
			fmt.Fprintln(out, indent+fileStyle.Render(n.Name()))
		}
		return nil
	}, opts...)
}
