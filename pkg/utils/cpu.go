package utils

import "github.com/shirou/gopsutil/cpu"

// CheckCPUUsage reports whether total CPU usage is at or below the given
// ceiling, so the job dispatcher can hold heavy pipeline work back on a busy
// host. When usage cannot be sampled the host is treated as busy.
func CheckCPUUsage(maxCPUUsage float64) (bool, float64) {
	usage, err := cpu.Percent(0, false)
	if err != nil || len(usage) == 0 {
		return false, 0
	}
	return usage[0] <= maxCPUUsage, usage[0]
}
