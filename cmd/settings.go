// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/statdeck/statdeck/pkg/settings"
)

var settingsForce bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and edit the persisted configuration",
	Long: `Inspect and edit the statdeck configuration file.

The dashboard's setup page edits the same file; these subcommands cover
headless machines and scripted installs.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration as the other commands see it: defaults, then
the config file, then STATDECK_* environment variables. The weather API
key is redacted.`,
	RunE: runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a fresh config file with default values",
	RunE:  runSettingsInit,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the OpenWeatherMap API key",
	Long: `Store the OpenWeatherMap API key in the config file.

The key is taken from STATDECK_OWM_API_KEY if set, otherwise prompted
for without echo.`,
	RunE: runSettingsSetKey,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsInitCmd, settingsSetKeyCmd)
	settingsInitCmd.Flags().BoolVar(&settingsForce, "force", false, "Overwrite an existing config file")
}

// configFilePath resolves the file these subcommands operate on: the
// --config flag when given, the default location otherwise.
func configFilePath() (string, error) {
	if cfgPath != "" {
		return cfgPath, nil
	}
	return settings.Path()
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}
	state := "missing, defaults in effect"
	if _, err := os.Stat(path); err == nil {
		state = "present"
	}

	fmt.Printf("Config file: %s (%s)\n\n", path, state)
	fmt.Printf("port:            %s\n", orUnset(cfg.Port))
	fmt.Printf("baud:            %d\n", cfg.Baud)
	fmt.Printf("listen:          %s\n", cfg.Listen)
	fmt.Printf("mount_primary:   %s\n", cfg.MountPrimary)
	fmt.Printf("mount_secondary: %s\n", cfg.MountSecondary)
	fmt.Printf("city:            %s\n", orUnset(cfg.City))
	fmt.Printf("units:           %s\n", cfg.Units)
	fmt.Printf("ease_rate:       %g\n", cfg.EaseRate)
	fmt.Printf("owm_api_key:     %s\n", redactKey(cfg.OWMAPIKey))
	return nil
}

func runSettingsInit(cmd *cobra.Command, args []string) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}
	if !settingsForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists: pass --force to overwrite", path)
		}
	}
	if err := settings.Save(settings.Defaults(), path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	fmt.Printf("Edit it directly, or use 'statdeck settings set-key' for the weather key.\n")
	return nil
}

func runSettingsSetKey(cmd *cobra.Command, args []string) error {
	key, err := readAPIKey()
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("no key entered")
	}

	path, err := configFilePath()
	if err != nil {
		return err
	}
	cfg.OWMAPIKey = key
	if err := settings.Save(cfg, path); err != nil {
		return err
	}

	fmt.Printf("API key saved to %s\n", path)
	if cfg.City == "" {
		fmt.Printf("No city configured yet: set one in the config file or the dashboard setup page.\n")
	}
	return nil
}

// readAPIKey retrieves the key from the environment or prompts for it
func readAPIKey() (string, error) {
	// First check environment variable
	if key := os.Getenv("STATDECK_OWM_API_KEY"); key != "" {
		return key, nil
	}

	// Prompt user for the key (hide input)
	fmt.Fprint(os.Stderr, "OpenWeatherMap API key: ")

	keyBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		key, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read key: %v", err)
		}
		fmt.Fprintln(os.Stderr) // newline after hidden input
		return strings.TrimSpace(key), nil
	}

	fmt.Fprintln(os.Stderr) // newline after hidden input
	return strings.TrimSpace(string(keyBytes)), nil
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func redactKey(key string) string {
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
