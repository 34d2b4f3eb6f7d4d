//go:build linux
// +build linux

// control/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific resource probes.

package control

import (
	"golang.org/x/sys/unix"
)

func registerOSProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.rusage", func() any {
		var ru unix.Rusage
		if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
			return err.Error()
		}
		return map[string]any{
			"max_rss_kb": ru.Maxrss,
			"minflt":     ru.Minflt,
			"majflt":     ru.Majflt,
		}
	})
}
