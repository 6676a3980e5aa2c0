// Package health reads basic host statistics, pushed alongside the state
// snapshot so a remote observer can tell a wedged controller from a dead
// link.
package health

import (
	linuxproc "github.com/c9s/goprocinfo/linux"
)

type Stats struct {
	Load1     float64
	MemFreeKb uint64
	Uptime    float64
}

// Read gathers stats from /proc. Partial failures leave fields zero - host
// stats are best effort telemetry, never load bearing.
func Read() Stats {
	var stats Stats
	if load, err := linuxproc.ReadLoadAvg("/proc/loadavg"); err == nil {
		stats.Load1 = load.Last1Min
	}
	if mem, err := linuxproc.ReadMemInfo("/proc/meminfo"); err == nil {
		stats.MemFreeKb = mem.MemFree
	}
	if up, err := linuxproc.ReadUptime("/proc/uptime"); err == nil {
		stats.Uptime = up.Total
	}
	return stats
}
