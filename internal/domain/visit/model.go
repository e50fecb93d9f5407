package visit

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Visit statuses (STATUS1), stored verbatim as the Thai strings staff see.
// The lifecycle runs active -> awaiting payment -> paid -> closed.
const (
	StatusActive          = "ทำงานอยู่"
	StatusAwaitingPayment = "รอชำระเงิน"
	StatusPaid            = "ชำระเงินแล้ว"
	StatusClosed          = "ปิดการรักษา"
)

// Line item kinds.
const (
	ItemDrug      = "drug"
	ItemProcedure = "procedure"
	ItemLab       = "lab"
)

// transitions is the allowed next step for each status. Earlier systems let
// disconnected screens set any status in any order; here the chain is
// enforced at the service boundary.
var transitions = map[string]string{
	StatusActive:          StatusAwaitingPayment,
	StatusAwaitingPayment: StatusPaid,
	StatusPaid:            StatusClosed,
}

// CanTransition reports whether a visit may move from one status to another.
func CanTransition(from, to string) bool {
	return transitions[from] == to
}

// Visit is one treatment record, keyed by the visit number (VNO). It is
// created alongside a queue entry and carries the vitals, findings and
// billable line items for that visit. UCSCard is the per-visit insurance
// flag; it can differ from the patient's when the monthly quota forces a
// self-pay visit.
type Visit struct {
	ID        uuid.UUID  `json:"id"`
	VN        string     `json:"VNO"`
	QueueID   uuid.UUID  `json:"QUEUE_ID"`
	HNCode    string     `json:"HNCODE"`
	Status    string     `json:"STATUS1"`
	UCSCard   string     `json:"UCS_CARD"`
	Weight    *float64   `json:"WEIGHT1"`
	Height    *float64   `json:"HIGHT1"`
	Temp      *float64   `json:"BT1"`
	BPSys     *int       `json:"BP1"`
	BPDia     *int       `json:"BP2"`
	RR        *int       `json:"RR1"`
	Pulse     *int       `json:"PR1"`
	SpO2      *int       `json:"SPO2"`
	Symptom   string     `json:"SYMPTOM"`
	Diagnosis string     `json:"DXCODE"`
	VisitDate time.Time  `json:"RDATE"`
	Items     []LineItem `json:"items,omitempty"`
	TotalCost float64    `json:"totalCost"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LineItem is one billable row on a visit.
type LineItem struct {
	ID        uuid.UUID `json:"id"`
	VN        string    `json:"VNO"`
	Kind      string    `json:"kind"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Qty       float64   `json:"qty"`
	UnitPrice float64   `json:"unit_price"`
	Amount    float64   `json:"amount"`
}

// Total sums the line item amounts.
func Total(items []LineItem) float64 {
	var t float64
	for _, it := range items {
		t += it.Amount
	}
	return t
}

// BMIResult is the computed body mass index with its Thai display category.
type BMIResult struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

// ComputeBMI returns the BMI for weight in kilograms and height in
// centimetres, rounded to one decimal. Returns nil when either input is
// missing or non-positive.
func ComputeBMI(weightKg, heightCm *float64) *BMIResult {
	if weightKg == nil || heightCm == nil || *weightKg <= 0 || *heightCm <= 0 {
		return nil
	}
	m := *heightCm / 100
	v := math.Round(*weightKg/(m*m)*10) / 10
	return &BMIResult{Value: v, Category: bmiCategory(v)}
}

func bmiCategory(v float64) string {
	switch {
	case v < 18.5:
		return "ผอม"
	case v < 25:
		return "ปกติ"
	case v < 30:
		return "ท้วม"
	default:
		return "อ้วน"
	}
}

// VNPrefix returns the visit-number prefix for the given date, VN plus the
// Buddhist-year date stamp (VN680901 for 1 Sep 2568). The daily running
// number is appended by the assignment path.
func VNPrefix(t time.Time) string {
	return fmt.Sprintf("VN%02d%02d%02d", (t.Year()+543)%100, int(t.Month()), t.Day())
}
