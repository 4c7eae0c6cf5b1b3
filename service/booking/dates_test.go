package bookingsvc

import (
	"testing"
	"time"
)

func date(d int) time.Time {
	return time.Date(2024, time.April, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"contained", 10, 15, 11, 12, true},
		{"partial", 10, 12, 11, 13, true},
		{"identical", 10, 12, 10, 12, true},
		{"shared end/start day", 10, 12, 12, 14, true},
		{"shared start/end day", 12, 14, 10, 12, true},
		{"adjacent", 10, 12, 13, 15, false},
		{"disjoint", 10, 11, 20, 25, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(date(tc.aStart), date(tc.aEnd), date(tc.bStart), date(tc.bEnd))
			if got != tc.want {
				t.Fatalf("Overlaps(%d-%d, %d-%d) = %v, want %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
		})
	}
}

func TestRentalDays(t *testing.T) {
	if d := RentalDays(date(10), date(13)); d != 3 {
		t.Fatalf("got %d days, want 3", d)
	}
	if d := RentalDays(date(10), date(10)); d != 0 {
		t.Fatalf("got %d days, want 0", d)
	}
	if d := RentalDays(date(13), date(10)); d >= 0 {
		t.Fatalf("reversed range must be negative, got %d", d)
	}
}

func TestNormalizeDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2024, time.April, 10, 23, 45, 11, 0, loc) // 18:45 UTC
	got := NormalizeDay(in)
	want := time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestQuote(t *testing.T) {
	if p := Quote(5000, 3); p != 15000 {
		t.Fatalf("got %v, want 15000", p)
	}
}
