package schedule

import (
	"encoding/json"
	"testing"
)

func TestParseClock(t *testing.T) {
	parsed, err := ParseClock("08:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != 510 {
		t.Fatalf("expected 510 minutes, got %d", parsed)
	}

	withSeconds, err := ParseClock("08:30:45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if withSeconds != parsed {
		t.Fatal("seconds must be discarded")
	}

	if parsed.String() != "08:30" {
		t.Fatalf("expected 08:30, got %s", parsed.String())
	}
}

func TestParseClockInvalid(t *testing.T) {
	for _, raw := range []string{"", "8", "24:00", "12:60", "ab:cd", "12:00:60"} {
		if _, err := ParseClock(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestClockTimeJSON(t *testing.T) {
	payload, err := json.Marshal(ClockTime(510))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(payload) != `"08:30"` {
		t.Fatalf("unexpected payload %s", payload)
	}

	var parsed ClockTime
	if err := json.Unmarshal([]byte(`"17:15"`), &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if parsed != 17*60+15 {
		t.Fatalf("expected 1035 minutes, got %d", parsed)
	}

	if err := json.Unmarshal([]byte(`"25:00"`), &parsed); err == nil {
		t.Fatal("expected error for out-of-range hour")
	}
}
