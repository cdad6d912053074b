// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package feed

import (
	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/statdeck/statdeck/pkg/logging"
	"github.com/statdeck/statdeck/pkg/statwire"
)

// gpuProbe reads utilization and temperature from the first NVML device.
// Machines without a working NVML stack get a disabled probe: utilization
// reads as zero and the temperature as the unknown sentinel, matching what
// a feeder without a GPU puts on the wire.
type gpuProbe struct {
	device nvml.Device
	ok     bool
}

func newGPUProbe() *gpuProbe {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		logging.Warn().Str("cause", nvml.ErrorString(ret)).Msg("NVML unavailable, GPU fields disabled")
		return &gpuProbe{}
	}
	device, ret := nvml.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		logging.Warn().Str("cause", nvml.ErrorString(ret)).Msg("No NVML device, GPU fields disabled")
		_ = nvml.Shutdown()
		return &gpuProbe{}
	}
	if name, ret := device.GetName(); ret == nvml.SUCCESS {
		logging.Info().Str("gpu", name).Msg("NVML initialized")
	}
	return &gpuProbe{device: device, ok: true}
}

func (g *gpuProbe) sample() (utilPct, tempF float64) {
	utilPct, tempF = 0, statwire.TempUnknown
	if !g.ok {
		return utilPct, tempF
	}
	if util, ret := g.device.GetUtilizationRates(); ret == nvml.SUCCESS {
		utilPct = float64(util.Gpu)
	}
	if tempC, ret := g.device.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		tempF = cToF(float64(tempC))
	}
	return utilPct, tempF
}

func (g *gpuProbe) close() {
	if g.ok {
		_ = nvml.Shutdown()
		g.ok = false
	}
}
