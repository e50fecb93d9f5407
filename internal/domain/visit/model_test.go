package visit

import (
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }

func TestComputeBMI_Normal(t *testing.T) {
	got := ComputeBMI(f(70), f(175))
	if got == nil {
		t.Fatal("expected a result")
	}
	if got.Value != 22.9 {
		t.Fatalf("expected 22.9, got %v", got.Value)
	}
	if got.Category != "ปกติ" {
		t.Fatalf("expected ปกติ, got %s", got.Category)
	}
}

func TestComputeBMI_Obese(t *testing.T) {
	got := ComputeBMI(f(100), f(160))
	if got == nil {
		t.Fatal("expected a result")
	}
	if got.Value != 39.1 {
		t.Fatalf("expected 39.1, got %v", got.Value)
	}
	if got.Category != "อ้วน" {
		t.Fatalf("expected อ้วน, got %s", got.Category)
	}
}

func TestComputeBMI_Underweight(t *testing.T) {
	got := ComputeBMI(f(45), f(170))
	if got == nil || got.Category != "ผอม" {
		t.Fatalf("expected ผอม, got %+v", got)
	}
}

func TestComputeBMI_MissingInput(t *testing.T) {
	if got := ComputeBMI(nil, f(175)); got != nil {
		t.Fatalf("expected nil for missing weight, got %+v", got)
	}
	if got := ComputeBMI(f(70), nil); got != nil {
		t.Fatalf("expected nil for missing height, got %+v", got)
	}
	if got := ComputeBMI(f(70), f(0)); got != nil {
		t.Fatalf("expected nil for zero height, got %+v", got)
	}
}

func TestCanTransition_Chain(t *testing.T) {
	steps := []struct {
		from, to string
		want     bool
	}{
		{StatusActive, StatusAwaitingPayment, true},
		{StatusAwaitingPayment, StatusPaid, true},
		{StatusPaid, StatusClosed, true},
		{StatusActive, StatusPaid, false},
		{StatusActive, StatusClosed, false},
		{StatusPaid, StatusActive, false},
		{StatusClosed, StatusActive, false},
	}
	for _, tc := range steps {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestVNPrefix(t *testing.T) {
	d := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) // BE 2568
	if got := VNPrefix(d); got != "VN680901" {
		t.Fatalf("expected VN680901, got %s", got)
	}
}

func TestTotal(t *testing.T) {
	items := []LineItem{
		{Kind: ItemDrug, Amount: 120},
		{Kind: ItemProcedure, Amount: 300},
		{Kind: ItemLab, Amount: 80},
	}
	if got := Total(items); got != 500 {
		t.Fatalf("expected 500, got %v", got)
	}
}
