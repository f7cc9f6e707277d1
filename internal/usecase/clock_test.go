package usecase

import (
	"testing"
	"time"
)

func TestClockNow(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Copenhagen")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	uc := NewClockUseCase("Europe/Copenhagen", loc)
	uc.now = func() time.Time {
		return time.Date(2025, time.March, 3, 13, 45, 9, 0, time.UTC)
	}

	info := uc.Now()
	if info.Time != "14:45:09" { // CET is UTC+1 in March before the switch
		t.Errorf("time = %q, want 14:45:09", info.Time)
	}
	if info.Date != "03-03-2025" {
		t.Errorf("date = %q, want 03-03-2025", info.Date)
	}
	if info.Timezone != "Europe/Copenhagen" {
		t.Errorf("timezone = %q", info.Timezone)
	}
	if info.Unix == 0 {
		t.Error("unix timestamp missing")
	}
}
