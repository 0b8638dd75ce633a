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

	"mocktree/internal/config"
)

var (
	configLogLevel  string
	configServeAddr string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persistent settings",
	Long: `Show or change the settings stored in ~/.mocktree/settings.yaml.

Examples:
  # Enable debug logging for every command
  mocktree config --logging debug

  # Serve on another port by default
  mocktree config --serve-addr 127.0.0.1:12049

  # Show current settings
  mocktree config`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&configLogLevel, "logging", "", "Log level: trace, debug, info, warn, off")
	configCmd.Flags().StringVar(&configServeAddr, "serve-addr", "", "Default listen address for serve")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	current, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	out := cmd.OutOrStdout()
	if configLogLevel == "" && configServeAddr == "" {
		level := current.LogLevel
		if level == "" {
			level = "off"
		}
		fmt.Fprintf(out, "%s %s\n", label("Settings"), config.SettingsPath())
		fmt.Fprintf(out, "  log_level:  %s\n", level)
		fmt.Fprintf(out, "  serve_addr: %s\n", current.ServeAddr)
		return nil
	}

	if configLogLevel != "" {
		level := strings.ToLower(strings.TrimSpace(configLogLevel))
		switch level {
		case "trace", "debug", "info", "warn", "off":
		default:
			return fmt.Errorf("unknown log level %q (want trace, debug, info, warn or off)", configLogLevel)
		}
		current.LogLevel = level
	}
	if configServeAddr != "" {
		current.ServeAddr = configServeAddr
	}

	if err := config.SaveSettings(current); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintf(out, "%s %s\n", successStyle.Render("updated"), config.SettingsPath())
	return nil
}
