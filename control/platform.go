// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform and Go runtime heap probes.

package control

import (
	"runtime"
)

// RegisterPlatformProbes sets runtime and OS-specific debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("runtime.heap", func() any {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return map[string]any{
			"heap_alloc":  ms.HeapAlloc,
			"total_alloc": ms.TotalAlloc,
			"mallocs":     ms.Mallocs,
			"frees":       ms.Frees,
			"num_gc":      ms.NumGC,
		}
	})
	registerOSProbes(dp)
}
