package debugui

import "time"

// FrameHistory is a fixed size ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
	filled  int
}

// NewFrameHistory keeps the last size samples. Size must be positive.
func NewFrameHistory(size int) *FrameHistory {
	if size <= 0 {
		size = 1
	}
	return &FrameHistory{samples: make([]float32, size)}
}

// Push records a frame time given in seconds.
func (h *FrameHistory) Push(deltaTime float32) {
	h.samples[h.index] = deltaTime * 1000.0
	h.index = (h.index + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// Average returns the mean of the recorded samples in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range h.samples[:h.filled] {
		sum += ms
	}
	return sum / float32(h.filled)
}

// FPS derives frames per second from the average frame time.
func (h *FrameHistory) FPS() float32 {
	avg := h.Average()
	if avg == 0 {
		return 0
	}
	return 1000.0 / avg
}

// Samples exposes the ring buffer for plotting.
func (h *FrameHistory) Samples() []float32 {
	return h.samples
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
