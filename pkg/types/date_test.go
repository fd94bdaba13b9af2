package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(time.Date(2024, 9, 14, 17, 30, 0, 0, time.UTC))

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2024-09-14"` {
		t.Fatalf("unexpected marshal output %s", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.String() != "2024-09-14" {
		t.Fatalf("round trip mismatch: %s", back)
	}
}

func TestDateUnmarshalAcceptsRFC3339(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-09-14T08:00:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.String() != "2024-09-14" {
		t.Fatalf("expected truncation to day, got %s", d)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2023, 1, 2, 13, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2023-01-02" {
		t.Fatalf("unexpected scan result %s", d)
	}

	var fromString Date
	if err := fromString.Scan("2023-01-02"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if !fromString.Equal(d.Time) {
		t.Fatalf("expected equal dates, got %s vs %s", fromString, d)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("14.09.2024"); err == nil {
		t.Fatal("expected error for non-ISO input")
	}
}
