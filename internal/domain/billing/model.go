package billing

import (
	"time"

	"github.com/google/uuid"
)

// Payment methods.
const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
)

// Payment is the settled bill for one visit. Amounts are computed server
// side from the visit's line items at the moment of payment.
type Payment struct {
	ID        uuid.UUID `json:"id"`
	VN        string    `json:"VNO"`
	HNCode    string    `json:"HNCODE"`
	Total     float64   `json:"total"`
	Discount  float64   `json:"discount"`
	Net       float64   `json:"net"`
	Tendered  float64   `json:"tendered"`
	Change    float64   `json:"change"`
	Method    string    `json:"method"`
	CashierID string    `json:"cashier_id"`
	PaidAt    time.Time `json:"paid_at"`
}

// DailyRevenue is the cashier's end-of-day summary.
type DailyRevenue struct {
	Date     string  `json:"date"`
	Payments int     `json:"payments"`
	Gross    float64 `json:"gross"`
	Discount float64 `json:"discount"`
	Net      float64 `json:"net"`
}

// NetTotal applies a discount to a visit total, clamped so the result is
// never negative.
func NetTotal(total, discount float64) float64 {
	net := total - discount
	if net < 0 {
		return 0
	}
	return net
}

// ChangeDue returns the change for a tendered amount, clamped to zero when
// the tender does not cover the bill. Insufficient tender is rejected
// separately; a negative change is never reported.
func ChangeDue(net, tendered float64) float64 {
	change := tendered - net
	if change < 0 {
		return 0
	}
	return change
}
