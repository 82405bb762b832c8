package main

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/plus3/blockfall/sim"
)

// systemRecord is one CSV row of per-system timings.
type systemRecord struct {
	Scheduler string `csv:"scheduler"`
	System    string `csv:"system"`
	Runs      int64  `csv:"runs"`
	TotalNs   int64  `csv:"total_ns"`
	AvgNs     int64  `csv:"avg_ns"`
	MinNs     int64  `csv:"min_ns"`
	MaxNs     int64  `csv:"max_ns"`
}

func systemRecords(scheduler string, stats *sim.SchedulerStats) []systemRecord {
	records := make([]systemRecord, 0, len(stats.Systems))
	for _, s := range stats.Systems {
		records = append(records, systemRecord{
			Scheduler: scheduler,
			System:    s.Name,
			Runs:      s.ExecutionCount,
			TotalNs:   s.TotalDuration.Nanoseconds(),
			AvgNs:     s.AvgDuration.Nanoseconds(),
			MinNs:     s.MinDuration.Nanoseconds(),
			MaxNs:     s.MaxDuration.Nanoseconds(),
		})
	}
	return records
}

func writeCSV(path string, records []systemRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
