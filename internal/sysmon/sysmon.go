// Package sysmon samples host-level resource usage for the dashboard's
// telemetry pane. Readings are best-effort: the dashboard keeps rendering
// with whatever the host exposes.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Usage is one host-level reading. Both fields are percentages in [0, 100]
// across all cores and all of physical memory, not just this process.
type Usage struct {
	CPU    float64
	Memory float64
}

// Sample takes a single reading. CPU usage is measured as the delta since
// the previous Sample call (gopsutil interval 0), so the first reading of a
// process legitimately reports zero. A probe failure leaves the affected
// field at zero rather than failing the run; a busy range computation should
// never die because /proc went away.
func Sample() Usage {
	var u Usage
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		u.CPU = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		u.Memory = vm.UsedPercent
	}
	return u
}
