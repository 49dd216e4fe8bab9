package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-02-28"); !ok {
		t.Errorf("IsValidDate(2025-02-28) = false, want true")
	}
	invalid := []string{"2025-13-01", "28-02-2025", "2025/02/28", "", "yesterday"}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "08:00", "17:30", "23:59"}
	invalid := []string{"24:00", "8:00", "08:60", "0800", "", "08:00:00"}
	for _, s := range valid {
		if !IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestIsValidDecimal(t *testing.T) {
	valid := []string{"0", "20", "-60", "1.25", "-1.5"}
	invalid := []string{"", "1,25", "1.", ".5", "abc", "--1"}
	for _, s := range valid {
		if !IsValidDecimal(s) {
			t.Errorf("IsValidDecimal(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidDecimal(s) {
			t.Errorf("IsValidDecimal(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	if _, ok := IsValidDateTime("2024-01-15T10:30:00Z"); !ok {
		t.Errorf("IsValidDateTime(RFC3339) = false, want true")
	}
	if _, ok := IsValidDateTime("2024-01-15 10:30:00"); ok {
		t.Errorf("IsValidDateTime(space separated) = true, want false")
	}
}
