// Package sysinfo resolves the built-in system probe keys that label
// rows reference instead of shelling out for common hardware facts.
package sysinfo

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/duskydesk/duskycc/internal/logger"
)

// Unavailable is shown for unknown keys and failed probes alike.
const Unavailable = "N/A"

// Probe indirection for tests.
var (
	virtualMemory = mem.VirtualMemoryWithContext
	cpuInfo       = cpu.InfoWithContext
	kernelVersion = host.KernelVersionWithContext
	lspciOutput   = func(ctx context.Context) ([]byte, error) {
		return exec.CommandContext(ctx, "lspci").Output()
	}
)

// Value resolves a system probe key to display text. Failures degrade
// to Unavailable; the label renders whatever comes back.
func Value(ctx context.Context, key string) string {
	switch key {
	case "memory_total":
		return memoryTotal(ctx)
	case "cpu_model":
		return cpuModel(ctx)
	case "gpu_model":
		return gpuModel(ctx)
	case "kernel_version":
		return kernel(ctx)
	}
	logger.Debug("Unknown system value key", "key", key)
	return Unavailable
}

func memoryTotal(ctx context.Context) string {
	vm, err := virtualMemory(ctx)
	if err != nil || vm == nil {
		logger.Warn("Could not read memory info", "error", err)
		return Unavailable
	}
	return formatGiB(vm.Total)
}

// formatGiB renders bytes as binary gigabytes with one decimal, the
// form users expect next to a "Memory" label.
func formatGiB(bytes uint64) string {
	gib := float64(bytes) / (1 << 30)
	return strconv.FormatFloat(gib, 'f', 1, 64) + " GB"
}

func cpuModel(ctx context.Context) string {
	infos, err := cpuInfo(ctx)
	if err != nil || len(infos) == 0 {
		logger.Warn("Could not read CPU info", "error", err)
		return Unavailable
	}
	model := strings.TrimSpace(infos[0].ModelName)
	if model == "" {
		return Unavailable
	}
	return model
}

func gpuModel(ctx context.Context) string {
	out, err := lspciOutput(ctx)
	if err != nil {
		logger.Warn("Could not run lspci", "error", err)
		return Unavailable
	}
	if name := firstDisplayAdapter(string(out)); name != "" {
		return name
	}
	return Unavailable
}

// firstDisplayAdapter picks the first VGA or 3D controller line from
// lspci output and strips the slot and class columns.
func firstDisplayAdapter(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "VGA compatible controller") &&
			!strings.Contains(line, "3D controller") {
			continue
		}
		parts := strings.SplitN(line, ":", 3)
		if len(parts) == 3 {
			return strings.TrimSpace(parts[2])
		}
	}
	return ""
}

func kernel(ctx context.Context) string {
	release, err := kernelVersion(ctx)
	if err != nil || strings.TrimSpace(release) == "" {
		logger.Warn("Could not read kernel version", "error", err)
		return Unavailable
	}
	return strings.TrimSpace(release)
}
