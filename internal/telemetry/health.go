package telemetry

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HealthSnapshot is a point-in-time process/host health report for the
// --metrics-addr health endpoint, grounded on the teacher's own
// gopsutil/v3 usage (admin.go, instance_reporter.go use cpu.Info).
type HealthSnapshot struct {
	CPUModel    string
	CPUCores    int
	MemUsedPct  float64
	MemTotalMB  uint64
}

// Snapshot samples host CPU/memory via gopsutil.
func Snapshot() (HealthSnapshot, error) {
	var snap HealthSnapshot

	cpuInfo, err := cpu.Info()
	if err != nil {
		return snap, fmt.Errorf("telemetry: cpu info: %w", err)
	}
	if len(cpuInfo) > 0 {
		snap.CPUModel = cpuInfo[0].ModelName
	}
	counts, err := cpu.Counts(true)
	if err != nil {
		return snap, fmt.Errorf("telemetry: cpu counts: %w", err)
	}
	snap.CPUCores = counts

	vm, err := mem.VirtualMemory()
	if err != nil {
		return snap, fmt.Errorf("telemetry: virtual memory: %w", err)
	}
	snap.MemUsedPct = vm.UsedPercent
	snap.MemTotalMB = vm.Total / (1024 * 1024)

	return snap, nil
}
