package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses, Thai strings as displayed.
const (
	StatusScheduled = "รอนัด"
	StatusConfirmed = "ยืนยันแล้ว"
	StatusArrived   = "เข้าพบแล้ว"
	StatusCancelled = "ยกเลิก"
)

// allowedNext maps each status to the set it may move to. Arrived and
// cancelled are terminal.
var allowedNext = map[string]map[string]bool{
	StatusScheduled: {StatusConfirmed: true, StatusArrived: true, StatusCancelled: true},
	StatusConfirmed: {StatusArrived: true, StatusCancelled: true},
}

// CanTransition reports whether an appointment may move between statuses.
func CanTransition(from, to string) bool {
	return allowedNext[from][to]
}

type Appointment struct {
	ID          uuid.UUID `json:"APPOINTMENT_ID"`
	HNCode      string    `json:"HNCODE"`
	PatientName string    `json:"PATIENT_NAME,omitempty"`
	ApptDate    time.Time `json:"APPOINTMENT_DATE"`
	ApptTime    string    `json:"APPOINTMENT_TIME"`
	DoctorCode  string    `json:"DOCTOR_CODE"`
	Reason      string    `json:"REASON"`
	Status      string    `json:"STATUS"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
