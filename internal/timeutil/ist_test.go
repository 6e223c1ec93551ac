package timeutil

import (
	"testing"
	"time"
)

func TestFinancialYear(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "april starts new FY", t: time.Date(2025, time.April, 1, 0, 0, 0, 0, IST), want: "2025-26"},
		{name: "march belongs to previous FY", t: time.Date(2026, time.March, 31, 23, 59, 0, 0, IST), want: "2025-26"},
		{name: "mid year", t: time.Date(2025, time.September, 15, 12, 0, 0, 0, IST), want: "2025-26"},
		{name: "january", t: time.Date(2025, time.January, 10, 0, 0, 0, 0, IST), want: "2024-25"},
		{name: "century rollover digits", t: time.Date(2099, time.June, 1, 0, 0, 0, 0, IST), want: "2099-00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FinancialYear(tt.t); got != tt.want {
				t.Errorf("FinancialYear(%v) = %q, want %q", tt.t, got, tt.want)
			}
		})
	}
}

func TestFinancialYearUsesIST(t *testing.T) {
	// 2025-03-31 20:00 UTC is already 2025-04-01 in IST
	utcEvening := time.Date(2025, time.March, 31, 20, 0, 0, 0, time.UTC)
	if got := FinancialYear(utcEvening); got != "2025-26" {
		t.Errorf("FinancialYear(UTC evening of Mar 31) = %q, want 2025-26", got)
	}
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2026, time.August, 14, 17, 42, 9, 123, IST)
	got := StartOfDay(ts)
	want := time.Date(2026, time.August, 14, 0, 0, 0, 0, IST)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}

func TestStartOfMonth(t *testing.T) {
	ts := time.Date(2026, time.August, 14, 17, 42, 9, 0, IST)
	got := StartOfMonth(ts)
	want := time.Date(2026, time.August, 1, 0, 0, 0, 0, IST)
	if !got.Equal(want) {
		t.Errorf("StartOfMonth() = %v, want %v", got, want)
	}
}
