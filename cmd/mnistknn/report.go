package main

import (
	"os"
	"time"

	"github.com/hupe1980/mnistknn"
	"github.com/hupe1980/mnistknn/codec"
	"github.com/hupe1980/mnistknn/dataset"
)

// Report summarizes one run.
type Report struct {
	K          int              `json:"k"`
	Metric     string           `json:"metric"`
	Seed       int64            `json:"seed"`
	Samples    int              `json:"samples"`
	Features   int              `json:"features"`
	Classes    []ClassReport    `json:"classes"`
	Split      SplitReport      `json:"split"`
	Testing    *PartitionReport `json:"testing"`
	Validation *PartitionReport `json:"validation,omitempty"`
	Elapsed    string           `json:"elapsed"`
}

// ClassReport describes one enumerated class.
type ClassReport struct {
	Index    int     `json:"index"`
	Label    uint8   `json:"label"`
	Accuracy float64 `json:"accuracy"`
}

// SplitReport holds the partition sizes.
type SplitReport struct {
	Training   int `json:"training"`
	Testing    int `json:"testing"`
	Validation int `json:"validation"`
	Leftover   int `json:"leftover"`
}

// PartitionReport holds the score of one partition.
type PartitionReport struct {
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
	Failed   int     `json:"failed"`
	// Missed lists the partition positions predicted wrong or not at all.
	Missed []int `json:"missed"`
}

// newPartitionReport summarizes ev. predictions may be nil when only the
// evaluation is available.
func newPartitionReport(ev *mnistknn.Evaluation, predictions []int) *PartitionReport {
	failed := 0
	for _, p := range predictions {
		if p == mnistknn.Unpredicted {
			failed++
		}
	}

	missed := make([]int, 0, ev.Misses.Count())
	for i, ok := ev.Misses.NextSet(0); ok; i, ok = ev.Misses.NextSet(i + 1) {
		missed = append(missed, int(i))
	}

	return &PartitionReport{
		Correct:  ev.Correct,
		Total:    ev.Total,
		Accuracy: ev.Accuracy,
		Failed:   failed,
		Missed:   missed,
	}
}

func classReports(classes *dataset.ClassMap, ev *mnistknn.Evaluation) []ClassReport {
	entries := classes.Entries()
	out := make([]ClassReport, len(entries))
	for i, e := range entries {
		out[i] = ClassReport{Index: e.Index, Label: e.Label, Accuracy: ev.ClassAccuracy(e.Index)}
	}
	return out
}

func writeReport(path, codecName string, r *Report, elapsed time.Duration) error {
	c, err := codec.ByName(codecName)
	if err != nil {
		return err
	}
	r.Elapsed = elapsed.String()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Encode(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
