package seqcode

import "testing"

func TestNext_Seed(t *testing.T) {
	if got := Next("P", 4, nil); got != "P0001" {
		t.Fatalf("expected P0001, got %s", got)
	}
}

func TestNext_MaxPlusOne(t *testing.T) {
	existing := []string{"P0001", "P0002", "P0003"}
	if got := Next("P", 4, existing); got != "P0004" {
		t.Fatalf("expected P0004, got %s", got)
	}
}

func TestNext_GapsDoNotBackfill(t *testing.T) {
	existing := []string{"P0001", "P0009"}
	if got := Next("P", 4, existing); got != "P0010" {
		t.Fatalf("expected P0010, got %s", got)
	}
}

func TestNext_IgnoresMalformed(t *testing.T) {
	existing := []string{"P0002", "PX", "Q0005", "P12345", "P00A1"}
	if got := Next("P", 4, existing); got != "P0003" {
		t.Fatalf("expected P0003, got %s", got)
	}
}

func TestNext_HospitalNumbers(t *testing.T) {
	if got := Next("HN68", 4, nil); got != "HN680001" {
		t.Fatalf("expected HN680001, got %s", got)
	}
	existing := []string{"HN680001", "HN680005", "HN670009"}
	if got := Next("HN68", 4, existing); got != "HN680006" {
		t.Fatalf("expected HN680006, got %s", got)
	}
}

func TestNext_TypeProcedureWidth(t *testing.T) {
	if got := Next("TP", 3, []string{"TP001", "TP002"}); got != "TP003" {
		t.Fatalf("expected TP003, got %s", got)
	}
}

func TestFormat(t *testing.T) {
	if got := Format("D", 4, 7); got != "D0007" {
		t.Fatalf("expected D0007, got %s", got)
	}
}
