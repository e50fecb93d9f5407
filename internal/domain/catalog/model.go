package catalog

import "time"

// Code prefixes and widths for the reference tables. The running number is
// assigned server side inside a transaction; earlier versions generated
// these in the browser and could collide across operators.
const (
	DrugPrefix    = "D"
	DrugWidth     = 4
	ProcPrefix    = "P"
	ProcWidth     = 4
	ProcTypePrefix = "TP"
	ProcTypeWidth  = 3
	UserTypePrefix = "UT"
	UserTypeWidth  = 3
)

// Drug is one dispensable item with its selling price and the on-hand
// quantity the stock report reads.
type Drug struct {
	Code      string    `json:"DRUG_CODE"`
	Name      string    `json:"GENERIC_NAME"`
	TradeName string    `json:"TRADE_NAME"`
	Unit      string    `json:"UNIT_CODE"`
	Price     float64   `json:"UNIT_PRICE"`
	Stock     float64   `json:"STOCK_QTY"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Procedure is a billable medical procedure.
type Procedure struct {
	Code      string    `json:"MED_PRO_CODE"`
	Name      string    `json:"MED_PRO_NAME_THAI"`
	NameEN    string    `json:"MED_PRO_NAME_ENG"`
	TypeCode  string    `json:"MED_PRO_TYPE_CODE"`
	Price     float64   `json:"UNIT_PRICE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProcedureType groups procedures.
type ProcedureType struct {
	Code      string    `json:"MED_PRO_TYPE_CODE"`
	Name      string    `json:"MED_PRO_TYPE_NAME"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserType is a staff role label used by the admin screens.
type UserType struct {
	Code      string    `json:"USER_TYPE_CODE"`
	Name      string    `json:"USER_TYPE_NAME"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
