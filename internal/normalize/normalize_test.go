package normalize

import (
	"testing"
	"time"
)

func TestParseDate_Formats(t *testing.T) {
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2024-01-15",
		"01/15/2024",
		"1/15/2024",
		"2024/01/15",
		"January 15, 2024",
		"Jan 15, 2024",
		"  2024-01-15  ",
		"2024-01-15T10:30:00Z", // timestamp in a date column keeps the date part
	} {
		got := ParseDate(in)
		if got == nil {
			t.Errorf("ParseDate(%q) = nil", in)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "2024-13-45"} {
		if got := ParseDate(in); got != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", in, got)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2020-01-02T00:00:00Z", time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2020-01-02T15:04:05Z", time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC)},
		{"2020-01-02T15:04:05", time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC)},
		{"2020-01-02 15:04:05", time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC)},
		{"2020-01-02", time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got := ParseTimestamp(c.in)
		if got == nil {
			t.Errorf("ParseTimestamp(%q) = nil", c.in)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseTimestamp_OffsetNormalizedToUTC(t *testing.T) {
	got := ParseTimestamp("2020-01-02T10:00:00+05:00")
	if got == nil {
		t.Fatal("ParseTimestamp returned nil")
	}
	want := time.Date(2020, 1, 2, 5, 0, 0, 0, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Errorf("got %v (loc %v), want %v UTC", got, got.Location(), want)
	}
}

func TestID(t *testing.T) {
	if got := ID("  P1  "); got != "P1" {
		t.Errorf("ID = %q, want P1", got)
	}
	if got := ID("   "); got != "" {
		t.Errorf("ID of whitespace = %q, want empty", got)
	}
}

func TestFreeText(t *testing.T) {
	got := FreeText("  routine   checkup ")
	if got == nil || *got != "routine checkup" {
		t.Errorf("FreeText = %v, want \"routine checkup\"", got)
	}
	if FreeText("   ") != nil {
		t.Error("FreeText of whitespace should be nil")
	}
}

func TestHeaderKey(t *testing.T) {
	for _, c := range []struct{ in, want string }{
		{"BIRTHDATE", "birthdate"},
		{"Birth_Date", "birthdate"},
		{"birth date", "birthdate"},
		{"REASONDESCRIPTION", "reasondescription"},
		{"Id", "id"},
	} {
		if got := HeaderKey(c.in); got != c.want {
			t.Errorf("HeaderKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
