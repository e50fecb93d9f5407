package staff

import "time"

// Employee code prefix, EMP001 onward.
const (
	CodePrefix = "EMP"
	CodeWidth  = 3
)

// Employee is a clinic staff member. Type carries the user-type code or a
// role keyword (doctor, nurse, registrar, cashier); the appointment book
// filters doctors by it.
type Employee struct {
	Code      string    `json:"EMP_CODE"`
	Prename   string    `json:"PRENAME"`
	FirstName string    `json:"EMP_NAME"`
	LastName  string    `json:"EMP_SURNAME"`
	Type      string    `json:"EMP_TYPE"`
	LicenseNo string    `json:"LICENSE_NO"`
	Tel       string    `json:"TEL1"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
