// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics and debug introspection for pools and
// sequences.
//
// Provides concurrent-safe state handling primitives including:
//   - Snapshot config reads with typed pool Limits
//   - Reload listeners that push new limits into running pools
//   - Metrics sampling of any api.StatsSource
//   - Debug probes for pool stats, Go heap counters and OS resource usage
package control
