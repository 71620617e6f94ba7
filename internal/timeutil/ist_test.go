package timeutil

import (
	"testing"
	"time"
)

func TestDateOfStripsTime(t *testing.T) {
	now := time.Date(2026, 7, 1, 13, 45, 12, 0, IST)
	d := DateOf(now)
	if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 {
		t.Errorf("DateOf(%v) = %v, want midnight", now, d)
	}
	if d.Day() != 1 || d.Month() != 7 {
		t.Errorf("DateOf(%v) = %v", now, d)
	}

	// 23:59 IST still belongs to the same day
	late := time.Date(2026, 3, 14, 23, 59, 0, 0, IST)
	if DateOf(late).Day() != 14 {
		t.Errorf("DateOf(%v) = %v, want the 14th", late, DateOf(late))
	}
}

func TestDateOfIgnoresCallerZone(t *testing.T) {
	// Same instant expressed in UTC must land on the same IST date
	instant := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC) // 01:30 IST next day
	fromUTC := DateOf(instant)
	fromIST := DateOf(instant.In(IST))
	if !fromUTC.Equal(fromIST) {
		t.Errorf("date differs by caller zone: %v vs %v", fromUTC, fromIST)
	}
	if fromUTC.Day() != 15 {
		t.Errorf("20:00 UTC should fall on the 15th in IST, got %v", fromUTC)
	}
}

func TestParseDateMidnightIST(t *testing.T) {
	d, err := ParseDate("2026-01-05")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Hour() != 0 || d.Location() != IST {
		t.Errorf("ParseDate returned %v, want midnight IST", d)
	}

	if _, err := ParseDate("05-01-2026"); err == nil {
		t.Error("expected error for non-ISO date string")
	}
}
