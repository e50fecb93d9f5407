package billing

import "testing"

func TestNetTotal(t *testing.T) {
	if got := NetTotal(500, 50); got != 450 {
		t.Fatalf("expected 450, got %v", got)
	}
	if got := NetTotal(500, 0); got != 500 {
		t.Fatalf("expected 500, got %v", got)
	}
}

func TestNetTotal_DiscountExceedsTotal(t *testing.T) {
	if got := NetTotal(500, 600); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
}

func TestChangeDue(t *testing.T) {
	if got := ChangeDue(450, 500); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	if got := ChangeDue(450, 450); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestChangeDue_InsufficientClampsToZero(t *testing.T) {
	if got := ChangeDue(450, 400); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
}
