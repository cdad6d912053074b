// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/statdeck/statdeck/pkg/feed"
	"github.com/statdeck/statdeck/pkg/logging"
)

var (
	feedDemo      bool
	feedOut       string
	feedInterval  time.Duration
	feedDiskScale float64
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Sample this machine and emit telemetry records",
	Long: `Sample host metrics once per interval and emit them as wire records.

Records go to a serial device (--out /dev/ttyACM0) or to stdout
(--out -), one line per sample, in the exact format 'statdeck watch'
ingests. Free-space fields use the mounts from the configuration.

With --demo a synthetic sampler replaces live metrics, useful for
exercising a display without a real workload. GPU fields need an NVIDIA
driver; machines without one send the unknown sentinel instead.`,
	RunE: runFeed,
}

func init() {
	rootCmd.AddCommand(feedCmd)
	feedCmd.Flags().BoolVar(&feedDemo, "demo", false, "Emit synthetic data instead of live metrics")
	feedCmd.Flags().StringVar(&feedOut, "out", "-", "Output: serial device path, or - for stdout")
	feedCmd.Flags().DurationVar(&feedInterval, "interval", feed.DefaultInterval, "Sampling interval")
	feedCmd.Flags().Float64Var(&feedDiskScale, "disk-scale", feed.DefaultDiskScaleMBps, "Disk throughput in MB/s shown as a full bar")
}

func runFeed(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sampler feed.Sampler
	if feedDemo {
		sampler = feed.NewDemoSampler()
		logging.Info().Msg("Using demo sampler")
	} else {
		host := feed.NewHostSampler(cfg.MountPrimary, cfg.MountSecondary, feedDiskScale)
		defer host.Close()
		sampler = host
	}

	var out io.Writer
	if feedOut == "-" {
		out = os.Stdout
	} else {
		baud := baudRate
		if baud == 0 {
			baud = cfg.Baud
		}
		port, err := OpenSerialConnection(feedOut, baud)
		if err != nil {
			return err
		}
		defer port.Close()
		logging.Info().Str("port", feedOut).Int("baud", baud).Msg("Feeding serial device")
		out = port
	}

	return feed.NewRunner(sampler, out, feedInterval).Run(ctx)
}
