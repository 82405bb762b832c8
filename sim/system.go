// Package sim is a small entity component store with an ordered system
// scheduler: entities live in archetypes, systems read them through views
// and singletons, and the scheduler runs systems per tick with timing stats.
package sim

// System represents one step of per-tick logic.
// Systems hold whatever state they need between frames and are executed in
// the order they were registered with a Scheduler.
type System interface {
	Execute(frame *UpdateFrame)
}
