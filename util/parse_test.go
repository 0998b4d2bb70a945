package util

import (
	"testing"
)

func TestAtoi(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"42", 42},
		{"-7", -7},
		{"+3", 3},
		{"  12abc", 12},
		{"2-", 2},
		{"--3", 0},
		{"", 0},
		{"-", 0},
		{"abc", 0},
		{"99999999999999999999999", int(^uint(0) >> 1)},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := Atoi(tc.in); got != tc.want {
				t.Errorf("Atoi(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseIntList(t *testing.T) {
	got, err := ParseIntList("1, -2,3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != -2 || got[2] != 3 {
		t.Errorf("got %v", got)
	}

	empty, err := ParseIntList("  ")
	if err != nil || empty != nil {
		t.Errorf("expected nil list for blank input, got %v, %v", empty, err)
	}

	if _, err := ParseIntList("1,,2"); err == nil {
		t.Error("expected error for empty element")
	}
	if _, err := ParseIntList("1,x"); err == nil {
		t.Error("expected error for non-integer element")
	}
}

func TestFormatIntList(t *testing.T) {
	if got := FormatIntList([]int{4, -3, 0}, ","); got != "4,-3,0" {
		t.Errorf("got %q", got)
	}
	if got := FormatIntList(nil, " "); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestStripSpace(t *testing.T) {
	if got := StripSpace(" 2 * X^3 \t- 1\n"); got != "2*X^3-1" {
		t.Errorf("got %q", got)
	}
	digits := KeepRunes("a1-b2", func(r rune) bool { return r == '-' || (r >= '0' && r <= '9') })
	if digits != "1-2" {
		t.Errorf("got %q", digits)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 99},
		{"100", 100},
		{"512KB", 512 << 10},
		{"10mb", 10 << 20},
		{" 1 GB ", 1 << 30},
		{"lots", 99},
		{"-5MB", 99},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseSize(tc.in, 99); got != tc.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}
