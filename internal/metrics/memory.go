// Package metrics provides lightweight runtime measurement helpers used to
// report per-run resource usage alongside calculation results.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// Delta returns the difference between a later snapshot and this one.
// Counters that can only grow (TotalAlloc style fields) subtract directly;
// gauge fields report the later reading.
func (s MemorySnapshot) Delta(later MemorySnapshot) MemorySnapshot {
	return MemorySnapshot{
		HeapAlloc:    later.HeapAlloc,
		HeapSys:      later.HeapSys,
		Sys:          later.Sys,
		NumGC:        later.NumGC - s.NumGC,
		PauseTotalNs: later.PauseTotalNs - s.PauseTotalNs,
		HeapObjects:  later.HeapObjects,
	}
}
