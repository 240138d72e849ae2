package metrics

import (
	"testing"
	"time"
)

func TestCollectorRecordTiming(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpSucceeded, 100*time.Millisecond)
	c.RecordTiming(OpSucceeded, 300*time.Millisecond)
	c.RecordTiming(OpTimedOut, 30*time.Second)

	snap := c.Snapshot()

	if snap.Succeeded == nil {
		t.Fatal("Succeeded snapshot is nil")
	}
	if snap.Succeeded.Count != 2 {
		t.Errorf("Succeeded.Count = %d, want 2", snap.Succeeded.Count)
	}
	if snap.Succeeded.MinTimeMs != 100 || snap.Succeeded.MaxTimeMs != 300 {
		t.Errorf("min/max = %d/%d, want 100/300", snap.Succeeded.MinTimeMs, snap.Succeeded.MaxTimeMs)
	}
	if snap.Succeeded.AvgTimeMs != 200 {
		t.Errorf("AvgTimeMs = %v, want 200", snap.Succeeded.AvgTimeMs)
	}

	if snap.TimedOut == nil || snap.TimedOut.Count != 1 {
		t.Errorf("TimedOut = %+v, want count 1", snap.TimedOut)
	}
}

func TestCollectorEmptySnapshot(t *testing.T) {
	snap := NewCollector().Snapshot()

	if snap.Succeeded != nil || snap.TimedOut != nil || snap.Network != nil ||
		snap.ClientError != nil || snap.ServerError != nil || snap.Other != nil {
		t.Errorf("empty collector snapshot has non-nil outcomes: %+v", snap)
	}
	if snap.UptimeSeconds < 0 {
		t.Errorf("UptimeSeconds = %v, want >= 0", snap.UptimeSeconds)
	}
}
