package reporting

import "testing"

func TestFindMeasure(t *testing.T) {
	m := FindMeasure("daily-visits")
	if m == nil {
		t.Fatal("expected daily-visits measure")
	}
	if len(m.Parameters) != 1 || m.Parameters[0] != "date" {
		t.Fatalf("expected date parameter, got %v", m.Parameters)
	}
	if FindMeasure("no-such-measure") != nil {
		t.Fatal("expected nil for unknown measure")
	}
}

func TestPredefinedMeasures_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range PredefinedMeasures {
		if seen[m.ID] {
			t.Fatalf("duplicate measure id %s", m.ID)
		}
		seen[m.ID] = true
		if m.SQL == "" {
			t.Fatalf("measure %s has no SQL", m.ID)
		}
	}
}

func TestCSVHeader_SortedAndStable(t *testing.T) {
	results := []map[string]interface{}{
		{"vn": "VN680901001", "hncode": "HN680001", "total": 450},
	}
	header := CSVHeader(results)
	want := []string{"hncode", "total", "vn"}
	if len(header) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(header))
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, header)
		}
	}
}

func TestCSVHeader_Empty(t *testing.T) {
	if got := CSVHeader(nil); got != nil {
		t.Fatalf("expected nil header, got %v", got)
	}
}
