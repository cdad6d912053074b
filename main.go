// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors
//
// Statdeck - a terminal dashboard for a serial host-telemetry stream.

package main

import (
	"os"

	"github.com/statdeck/statdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
