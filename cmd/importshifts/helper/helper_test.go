package helper

import (
	"strings"
	"testing"
)

func TestParsePunchCSV(t *testing.T) {
	csvData := `ID,WorkerCode,Timestamp,Location
1,W-101,2026-03-02T15:00:00+00:00,Gate A
2,W-102,2026-03-02T16:00:00+00:00,Gate B
`
	punches, err := ParsePunchCSV(strings.NewReader(csvData), -8*60*60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(punches) != 2 {
		t.Fatalf("expected 2 punches, got %d", len(punches))
	}

	if punches[0].ID != 1 || punches[0].WorkerCode != "W-101" || punches[0].Location != "Gate A" || punches[0].Date != "2026-03-02" {
		t.Errorf("unexpected first punch: %+v", punches[0])
	}

	if punches[1].ID != 2 || punches[1].WorkerCode != "W-102" || punches[1].Location != "Gate B" {
		t.Errorf("unexpected second punch: %+v", punches[1])
	}
}

func TestParsePunchCSVRejectsShortRows(t *testing.T) {
	csvData := "ID,WorkerCode,Timestamp,Location\n1,W-101,2026-03-02T15:00:00+00:00,Gate A\n2,W-102\n"
	if _, err := ParsePunchCSV(strings.NewReader(csvData), 0); err == nil {
		t.Fatal("expected error for short row")
	}
}

func TestGroupPunches(t *testing.T) {
	csvData := `ID,WorkerCode,Timestamp,Location
1,W-101,2026-03-02T15:00:00+00:00,Gate A
2,W-101,2026-03-02T23:30:00+00:00,Gate A
3,W-101,2026-03-02T19:00:00+00:00,Gate A
4,W-102,2026-03-02T16:00:00+00:00,Gate B
`
	punches, err := ParsePunchCSV(strings.NewReader(csvData), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := GroupPunches(punches)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	first := spans[0]
	if first.WorkerCode != "W-101" || len(first.Punches) != 3 {
		t.Errorf("unexpected first span: %+v", first)
	}
	if first.From != punches[0].Timestamp || first.To != punches[1].Timestamp {
		t.Errorf("span bounds not min/max: from=%v to=%v", first.From, first.To)
	}
}
