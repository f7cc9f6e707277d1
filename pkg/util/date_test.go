package util

import (
	"testing"
	"time"
)

func TestStartOfYear(t *testing.T) {
	in := time.Date(2025, 8, 25, 13, 30, 0, 0, time.UTC)
	got := StartOfYear(in)
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTruncateToDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Copenhagen")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	in := time.Date(2025, 8, 25, 13, 30, 45, 0, loc)
	got := TruncateToDay(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
	if got.Location() != loc {
		t.Fatalf("expected location preserved")
	}
}
