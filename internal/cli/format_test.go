package cli

import "testing"

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{95, "1h 35m"},
		{-30, "-30m"},
		{-95, "-1h 35m"},
	}
	for _, tc := range cases {
		if got := FormatMinutes(tc.in); got != tc.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSignedMinutes(t *testing.T) {
	if got := FormatSignedMinutes(30); got != "+30m" {
		t.Errorf("FormatSignedMinutes(30) = %q", got)
	}
	if got := FormatSignedMinutes(-90); got != "-1h 30m" {
		t.Errorf("FormatSignedMinutes(-90) = %q", got)
	}
	if got := FormatSignedMinutes(0); got != "+0m" {
		t.Errorf("FormatSignedMinutes(0) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("short", 10); got != "short" {
		t.Errorf("TruncateText(short, 10) = %q", got)
	}
	if got := TruncateText("a longer piece of text", 10); len([]rune(got)) != 10 {
		t.Errorf("TruncateText length = %d, want 10", len([]rune(got)))
	}
	if got := TruncateText("anything", 0); got != "" {
		t.Errorf("TruncateText with 0 limit = %q", got)
	}
}
