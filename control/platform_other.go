//go:build !linux

package control

func registerOSProbes(*DebugProbes) {}
