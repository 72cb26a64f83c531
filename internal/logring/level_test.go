package logring

import "testing"

func TestLevel_Ordering(t *testing.T) {
	order := []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal, LevelOff}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Fatalf("%s not below %s", order[i-1], order[i])
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"WRN", LevelWarn},
		{"error", LevelError},
		{"err", LevelError},
		{"fatal", LevelFatal},
		{"panic", LevelFatal},
		{"off", LevelOff},
		{"  info  ", LevelInfo},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLevel_StringRoundTrip(t *testing.T) {
	for _, l := range Levels() {
		if got := ParseLevel(l.String()); got != l {
			t.Fatalf("ParseLevel(%q) = %s, want %s", l.String(), got, l)
		}
	}
}

func TestLevel_StringOutOfRange(t *testing.T) {
	if got := Level(-1).String(); got != "INFO" {
		t.Fatalf("Level(-1).String() = %q, want INFO", got)
	}
	if got := Level(99).String(); got != "INFO" {
		t.Fatalf("Level(99).String() = %q, want INFO", got)
	}
}
