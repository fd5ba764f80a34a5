package services

import (
	"smartpark/models"
	"testing"
	"time"
)

func TestComputeBilling(t *testing.T) {
	entry := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		exit         time.Time
		wantDuration int
		wantAmount   int
	}{
		{"under a minute counts as one", entry.Add(59 * time.Second), 1, 1000},
		{"under an hour still bills one hour", entry.Add(30 * time.Minute), 30, 1000},
		{"exactly one hour", entry.Add(60 * time.Minute), 60, 1000},
		{"one minute over an hour bills two", entry.Add(61 * time.Minute), 61, 2000},
		{"exactly two hours", entry.Add(120 * time.Minute), 120, 2000},
		{"partial minute rounds up", entry.Add(60*time.Minute + 1*time.Second), 61, 2000},
		{"zero interval", entry, 0, 1000},
		// 負區間不擋也不歸零：分鐘照實為負，費用仍最低一小時
		{"negative interval keeps negative duration", entry.Add(-90 * time.Second), -1, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			duration, amount := ComputeBilling(entry, tt.exit)
			if duration != tt.wantDuration {
				t.Errorf("duration = %d, want %d", duration, tt.wantDuration)
			}
			if amount != tt.wantAmount {
				t.Errorf("amount = %d, want %d", amount, tt.wantAmount)
			}
		})
	}
}

func TestCompleteSession(t *testing.T) {
	entry := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	exit := entry.Add(61 * time.Minute)

	record := models.ParkingRecord{
		EntryTime: entry,
		Status:    models.RecordStatusActive,
	}

	CompleteSession(&record, exit)

	if record.ExitTime == nil || !record.ExitTime.Equal(exit) {
		t.Fatalf("exit time not set, got %v", record.ExitTime)
	}
	if record.Status != models.RecordStatusCompleted {
		t.Errorf("status = %s, want %s", record.Status, models.RecordStatusCompleted)
	}
	if record.Duration != 61 {
		t.Errorf("duration = %d, want 61", record.Duration)
	}
	if record.TotalAmount != 2000 {
		t.Errorf("total amount = %d, want 2000", record.TotalAmount)
	}
}

func TestCompleteSessionKeepsCompletedStatus(t *testing.T) {
	entry := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	record := models.ParkingRecord{
		EntryTime: entry,
		Status:    models.RecordStatusCompleted,
	}

	CompleteSession(&record, entry.Add(10*time.Minute))

	// completed 不會變回其他狀態，轉換只發生一次
	if record.Status != models.RecordStatusCompleted {
		t.Errorf("status = %s, want %s", record.Status, models.RecordStatusCompleted)
	}
}
