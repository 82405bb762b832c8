package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/plus3/blockfall/tetris"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	Seed      uint64
	Width     int
	Height    int
	FrameTime time.Duration

	// Results
	TotalUpdates    int64
	TotalTime       time.Duration
	UpdateTime      Stats
	Game            tetris.Stats
	Score           int
	ActionsSent     int
	ActionsConsumed int
	GCPauseMetrics  bool
	MemStatsStart   runtime.MemStats
	MemStatsEnd     runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Mean    time.Duration
	StdDev  time.Duration
	P50     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

// Finalize computes the summary from Samples. Samples is left sorted.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	slices.Sort(s.Samples)
	ns := make([]float64, len(s.Samples))
	for i, sample := range s.Samples {
		ns[i] = float64(sample)
	}

	s.Min = s.Samples[0]
	s.Max = s.Samples[len(s.Samples)-1]
	s.Mean = time.Duration(stat.Mean(ns, nil))
	if len(ns) > 1 {
		s.StdDev = time.Duration(stat.StdDev(ns, nil))
	}
	s.P50 = time.Duration(stat.Quantile(0.5, stat.Empirical, ns, nil))
	s.P99 = time.Duration(stat.Quantile(0.99, stat.Empirical, ns, nil))
}

// UpdatesPerSecond is the achieved update throughput.
func (r *Report) UpdatesPerSecond() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.TotalUpdates) / r.TotalTime.Seconds()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Board:** {{.Width}}x{{.Height}}
- **Simulated Frame Time:** {{.FrameTime}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}} ({{printf "%.0f" .UpdatesPerSecond}}/s)
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Mean:** {{.UpdateTime.Mean}} (stddev {{.UpdateTime.StdDev}})
  - **P50:** {{.UpdateTime.P50}}
  - **P99:** {{.UpdateTime.P99}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Game Results
- **Final Score:** {{.Score}}
- **Ticks:** {{.Game.Ticks}}
- **Spawns / Locks:** {{.Game.Spawns}} / {{.Game.Locks}}
- **Rows Cleared:** {{.Game.RowsCleared}}
- **Resets:** {{.Game.Resets}}
- **Bot Actions:** {{.ActionsSent}} sent, {{.ActionsConsumed}} consumed

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
