package billing

import "testing"

func TestHoursBetween_SameDay(t *testing.T) {
	if got := HoursBetween("08:00", "08:50"); !almostEqual(got, 50.0/60) {
		t.Fatalf("HoursBetween(08:00, 08:50) = %v, want %v", got, 50.0/60)
	}
	if got := HoursBetween("09:00", "17:30"); !almostEqual(got, 8.5) {
		t.Fatalf("HoursBetween(09:00, 17:30) = %v, want 8.5", got)
	}
}

func TestHoursBetween_OvernightRollover(t *testing.T) {
	// End earlier than start on the clock means the job crossed midnight.
	if got := HoursBetween("22:00", "02:00"); got != 4 {
		t.Fatalf("HoursBetween(22:00, 02:00) = %v, want 4", got)
	}
	if got := HoursBetween("23:30", "00:15"); !almostEqual(got, 0.75) {
		t.Fatalf("HoursBetween(23:30, 00:15) = %v, want 0.75", got)
	}
}

func TestHoursBetween_SameInstantIsZero(t *testing.T) {
	// Equal start and end is the same instant, not 24 hours.
	if got := HoursBetween("10:00", "10:00"); got != 0 {
		t.Fatalf("HoursBetween(10:00, 10:00) = %v, want 0", got)
	}
}

func TestHoursBetween_AbsentOrMalformed(t *testing.T) {
	cases := [][2]string{
		{"", "10:00"},
		{"10:00", ""},
		{"", ""},
		{"banana", "10:00"},
		{"10:00", "25:00"},
		{"10:61", "12:00"},
		{"1000", "12:00"},
	}
	for _, c := range cases {
		if got := HoursBetween(c[0], c[1]); got != 0 {
			t.Errorf("HoursBetween(%q, %q) = %v, want 0", c[0], c[1], got)
		}
	}
}

func TestHoursBetween_AlwaysWithinDay(t *testing.T) {
	// For any valid pair the result stays in [0, 24).
	clocks := []string{"00:00", "00:01", "06:30", "12:00", "18:45", "23:59"}
	for _, s := range clocks {
		for _, e := range clocks {
			got := HoursBetween(s, e)
			if got < 0 || got >= 24 {
				t.Errorf("HoursBetween(%q, %q) = %v, out of [0, 24)", s, e, got)
			}
		}
	}
}

func TestDayOfJob(t *testing.T) {
	if got := DayOfJob("2024-03-18"); got != "Monday" {
		t.Fatalf("DayOfJob(2024-03-18) = %q, want Monday", got)
	}
	if got := DayOfJob("not a date"); got != "" {
		t.Fatalf("DayOfJob(not a date) = %q, want empty", got)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
