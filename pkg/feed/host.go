// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package feed

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/statdeck/statdeck/pkg/logging"
	"github.com/statdeck/statdeck/pkg/statwire"
)

const bytesPerGB = 1024 * 1024 * 1024

// Sensor keys tried for the CPU temperature, most specific first. The first
// key with a reading wins; machines exposing none send the unknown sentinel.
var cpuTempKeys = []string{"coretemp", "k10temp", "zenpower", "acpitz", "cpu_thermal", "cpu-thermal"}

// HostSampler reads live machine metrics: CPU and memory load, aggregate
// disk throughput, CPU and GPU temperatures, and free space for two mounts.
// Disk throughput is a delta against the previous sample, so the first
// Sample after construction reports zero I/O.
type HostSampler struct {
	mountPrimary   string
	mountSecondary string
	diskScaleMBps  float64

	prevIOBytes uint64
	prevIOTime  time.Time

	gpu *gpuProbe
}

// NewHostSampler creates a sampler for the given free-space mounts, with
// diskScaleMBps as the throughput mapped to a 100% disk bar. It warms up
// the CPU counter and primes the I/O delta so the first real sample is
// meaningful.
func NewHostSampler(mountPrimary, mountSecondary string, diskScaleMBps float64) *HostSampler {
	if diskScaleMBps <= 0 {
		diskScaleMBps = DefaultDiskScaleMBps
	}
	s := &HostSampler{
		mountPrimary:   mountPrimary,
		mountSecondary: mountSecondary,
		diskScaleMBps:  diskScaleMBps,
		gpu:            newGPUProbe(),
	}

	// cpu.Percent with no interval reports load since the previous call;
	// the throwaway call here starts that window.
	_, _ = cpu.Percent(0, false)
	s.prevIOBytes = readIOBytes()
	s.prevIOTime = time.Now()
	return s
}

// Close releases the GPU probe.
func (s *HostSampler) Close() {
	s.gpu.close()
}

// Sample reads every metric once. Individual probe failures degrade to the
// field's neutral value or unknown sentinel; they never fail the sample.
func (s *HostSampler) Sample(now time.Time) statwire.Snapshot {
	snap := statwire.Snapshot{
		CPUTempF:    cpuTemperatureF(),
		FreeCGB:     freeGB(s.mountPrimary),
		FreeDGB:     freeGB(s.mountSecondary),
		IndoorTempF: statwire.TempUnknown,
	}

	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		snap.CPUPct = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemPct = vm.UsedPercent
	}

	ioBytes := readIOBytes()
	snap.DiskMBps = throughputMBps(s.prevIOBytes, ioBytes, now.Sub(s.prevIOTime))
	snap.DiskPct = ratePct(snap.DiskMBps, s.diskScaleMBps)
	s.prevIOBytes = ioBytes
	s.prevIOTime = now

	snap.GPUPct, snap.GPUTempF = s.gpu.sample()
	return snap
}

// readIOBytes sums read+write bytes across every block device, the same
// aggregate the delta rate is computed from.
func readIOBytes() uint64 {
	counters, err := disk.IOCounters()
	if err != nil {
		logging.Debug().Err(err).Msg("Disk counters unavailable")
		return 0
	}
	var total uint64
	for _, c := range counters {
		total += c.ReadBytes + c.WriteBytes
	}
	return total
}

// throughputMBps converts an I/O byte delta into MB/s. A non-positive
// elapsed time or a counter that went backwards (reboot, wrap) reads as
// zero rather than a spike.
func throughputMBps(prevBytes, curBytes uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 || curBytes < prevBytes {
		return 0
	}
	return float64(curBytes-prevBytes) / elapsed.Seconds() / (1024 * 1024)
}

// ratePct maps a throughput onto the 0-100 disk bar given the full-scale
// rate.
func ratePct(mbps, scaleMBps float64) float64 {
	if scaleMBps <= 0 {
		return 0
	}
	return statwire.ClampPct(mbps / scaleMBps * 100)
}

func cpuTemperatureF() float64 {
	temps, err := sensors.SensorsTemperatures()
	if err != nil || len(temps) == 0 {
		return statwire.TempUnknown
	}
	for _, key := range cpuTempKeys {
		for _, t := range temps {
			if t.SensorKey == key && t.Temperature != 0 {
				return cToF(t.Temperature)
			}
		}
	}
	return statwire.TempUnknown
}

func freeGB(mount string) float64 {
	if mount == "" {
		return statwire.SpaceUnknown
	}
	usage, err := disk.Usage(mount)
	if err != nil {
		logging.Debug().Str("mount", mount).Err(err).Msg("Mount not readable")
		return statwire.SpaceUnknown
	}
	return float64(usage.Free) / bytesPerGB
}

func cToF(c float64) float64 {
	return c*9.0/5.0 + 32.0
}
