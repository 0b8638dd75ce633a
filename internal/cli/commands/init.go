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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mocktree/internal/artifacts"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write an example fixture",
	Long: `Write an example fixture to the given file (default: mocktree.yaml).

The example declares a small project tree and shows every step kind.
An existing file is left alone unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "mocktree.yaml"
	if len(args) > 0 {
		target = args[0]
	}

	absPath, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(absPath); err == nil && !initForce {
		fmt.Fprintf(out, "%s already exists (not modified)\n", absPath)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(absPath, artifacts.ExampleFixture, 0644); err != nil {
		return fmt.Errorf("failed to write fixture: %w", err)
	}
	fmt.Fprintf(out, "%s %s\n", successStyle.Render("created"), absPath)
	return nil
}
