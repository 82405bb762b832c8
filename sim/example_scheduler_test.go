package sim_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/blockfall/sim"
)

type Clock struct {
	Frames int
	Total  float64
}

func (c *Clock) Execute(frame *sim.UpdateFrame) {
	c.Frames++
	c.Total += frame.DeltaTime
}

type Announcer struct {
	Clock *Clock
}

func (a *Announcer) Execute(frame *sim.UpdateFrame) {
	frames := a.Clock.Frames
	frame.Commands.Defer(func() {
		fmt.Printf("frame %d done\n", frames)
	})
}

// ExampleScheduler demonstrates a fixed pipeline of systems.
// Systems run in registration order and deferred commands run once every
// system of the tick has finished.
func ExampleScheduler() {
	clock := &Clock{}

	scheduler := sim.NewScheduler(nil)
	scheduler.Register(clock)
	scheduler.Register(&Announcer{Clock: clock})

	scheduler.Once(0.016)
	scheduler.Once(0.016)
	scheduler.Once(0.016)

	fmt.Printf("Frames: %d, Time: %.3f\n", clock.Frames, clock.Total)

	// Output:
	// frame 1 done
	// frame 2 done
	// frame 3 done
	// Frames: 3, Time: 0.048
}

// ExampleScheduler_Run demonstrates running a continuous loop until the
// context is cancelled.
func ExampleScheduler_Run() {
	scheduler := sim.NewScheduler(nil)
	scheduler.Register(&Clock{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}
