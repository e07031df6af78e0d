package timeparse

import (
	"errors"
	"testing"
)

func TestParseHourRange_Buckets(t *testing.T) {
	tests := []struct {
		input  string
		lo, hi int
	}{
		{"morning", 5, 11},
		{"afternoon", 12, 16},
		{"evening", 17, 23},
		{"Morning", 5, 11},
		{"  evening  ", 17, 23},
	}

	for _, tt := range tests {
		hr, err := ParseHourRange(tt.input)
		if err != nil {
			t.Errorf("ParseHourRange(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if hr.Lo != tt.lo || hr.Hi != tt.hi {
			t.Errorf("ParseHourRange(%q) = [%d, %d], want [%d, %d]",
				tt.input, hr.Lo, hr.Hi, tt.lo, tt.hi)
		}
	}
}

func TestParseHourRange_CustomRanges(t *testing.T) {
	tests := []struct {
		input  string
		lo, hi int
	}{
		{"2pm-5pm", 14, 17},
		{"9am-5pm", 9, 17},
		{"14-17", 14, 17},
		{"12am-3am", 0, 3},
		{"10 to 12", 10, 12},
	}

	for _, tt := range tests {
		hr, err := ParseHourRange(tt.input)
		if err != nil {
			t.Errorf("ParseHourRange(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if hr.Lo != tt.lo || hr.Hi != tt.hi {
			t.Errorf("ParseHourRange(%q) = [%d, %d], want [%d, %d]",
				tt.input, hr.Lo, hr.Hi, tt.lo, tt.hi)
		}
	}
}

func TestParseHourRange_Invalid(t *testing.T) {
	for _, input := range []string{"", "nope", "5pm-2pm", "25-30", "noonish"} {
		_, err := ParseHourRange(input)
		if err == nil {
			t.Errorf("ParseHourRange(%q): expected error", input)
			continue
		}
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Errorf("ParseHourRange(%q): expected ValidationError, got %T", input, err)
		}
	}
}

func TestHourRange_Contains(t *testing.T) {
	hr := HourRange{Lo: 5, Hi: 11}

	if !hr.Contains(5) || !hr.Contains(11) {
		t.Error("Expected bounds to be inclusive")
	}
	if hr.Contains(4) || hr.Contains(12) {
		t.Error("Expected hours outside the range to be excluded")
	}
}
