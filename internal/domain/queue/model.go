package queue

import (
	"time"

	"github.com/google/uuid"
)

// Queue entry statuses, stored verbatim as the Thai strings the clinic staff
// see on screen.
const (
	StatusWaiting    = "รอตรวจ"
	StatusInProgress = "กำลังตรวจ"
	StatusDone       = "เสร็จแล้ว"
)

// Entry is one position in the daily queue. QueueNumber is sequential and
// resets each day; entries are closed, never deleted.
type Entry struct {
	ID          uuid.UUID `json:"QUEUE_ID"`
	QueueNumber int       `json:"QUEUE_NUMBER"`
	HNCode      string    `json:"HNCODE"`
	PatientName string    `json:"PATIENT_NAME,omitempty"`
	Status      string    `json:"QUEUE_STATUS"`
	QueueDate   time.Time `json:"QUEUE_DATE"`
	CreatedAt   time.Time `json:"created_at"`
}

// Stats is the reception dashboard counter row.
type Stats struct {
	Waiting    int `json:"waiting"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
	Total      int `json:"total"`
}
