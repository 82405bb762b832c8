package sim

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats is a snapshot of how a scheduler's systems have performed.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats is the timing of one system. MinDuration is zero until the
// system has run.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type entry struct {
	system System
	timing SystemStats
}

func (e *entry) record(d time.Duration) {
	t := &e.timing
	if t.ExecutionCount == 0 || d < t.MinDuration {
		t.MinDuration = d
	}
	t.MaxDuration = max(t.MaxDuration, d)
	t.ExecutionCount++
	t.LastDuration = d
	t.TotalDuration += d
	t.AvgDuration = t.TotalDuration / time.Duration(t.ExecutionCount)
}

// Scheduler executes its systems in registration order, one pass per tick.
type Scheduler struct {
	storage  *Storage
	entries  []*entry
	commands *Commands
}

// NewScheduler creates a scheduler whose systems work on storage. Storage may
// be nil when no system reads entities.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: NewCommands(),
	}
}

// Storage returns the storage handed to systems.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// storageBinder is implemented by View and Singleton.
type storageBinder interface {
	bindStorage(*Storage)
}

// Register appends a system to the execution order and binds its exported
// View and Singleton fields to the scheduler's storage.
func (s *Scheduler) Register(system System) {
	s.bindFields(system)
	s.entries = append(s.entries, &entry{
		system: system,
		timing: SystemStats{Name: systemName(system)},
	})
}

func (s *Scheduler) bindFields(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()

	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			continue
		}
		if s.storage == nil {
			panic("system " + systemName(system) + " field " + v.Type().Field(i).Name + " needs a storage")
		}
		binder.bindStorage(s.storage)
	}
}

// systemName is the type name of system, without pointer indirection.
func systemName(system System) string {
	t := reflect.TypeOf(system)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Len returns the number of registered systems.
func (s *Scheduler) Len() int {
	return len(s.entries)
}

// Once executes all registered systems once with the given delta time
// (seconds) and then flushes deferred commands.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage, s.commands)

	for _, e := range s.entries {
		start := time.Now()
		e.system.Execute(frame)
		e.record(time.Since(start))
	}

	frame.Commands.Flush()
}

// Run ticks every interval, passing the measured wall time since the
// previous tick, until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// GetStats returns a copy of the per-system timings.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.entries),
		Systems:     make([]SystemStats, 0, len(s.entries)),
	}
	for _, e := range s.entries {
		stats.Systems = append(stats.Systems, e.timing)
		stats.TotalExecutions += e.timing.ExecutionCount
	}
	return stats
}
