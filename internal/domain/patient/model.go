package patient

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Identity document types accepted at registration.
const (
	IDTypeCitizenCard = "IDCARD"
	IDTypePassport    = "PASSPORT"
)

// Patient is a demographic record. HNCode is the human-readable hospital
// number (HN + two-digit Buddhist year + four-digit running number, e.g.
// HN680001) and is the identifier the rest of the system references.
// Patients are never deleted, only edited.
type Patient struct {
	ID         uuid.UUID  `json:"id"`
	HNCode     string     `json:"HNCODE"`
	Prename    string     `json:"PRENAME"`
	FirstName  string     `json:"NAME1"`
	LastName   string     `json:"SURNAME"`
	Sex        string     `json:"SEX"`
	BirthDate  *time.Time `json:"BDATE"`
	IDNo       string     `json:"IDNO"`
	IDType     string     `json:"ID_TYPE"`
	SocialCard string     `json:"SOCIAL_CARD"`
	UCSCard    string     `json:"UCS_CARD"`
	Tel        string     `json:"TEL1"`
	Address    string     `json:"ADDR1"`
	BloodGroup string     `json:"BLOOD_GROUP1"`
	DrugAllergy string    `json:"DRUG_ALLERGY"`
	Disease    string     `json:"DISEASE1"`

	// Derived at read time, not stored.
	Age     int    `json:"AGE"`
	AgeUnit string `json:"AGE_UNIT"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComputeAge fills the derived age fields from the birth date. Infants under
// one year are reported in months.
func (p *Patient) ComputeAge(now time.Time) {
	if p.BirthDate == nil {
		p.Age, p.AgeUnit = 0, ""
		return
	}
	years, months := ageParts(*p.BirthDate, now)
	if years < 1 {
		p.Age, p.AgeUnit = months, "เดือน"
		return
	}
	p.Age, p.AgeUnit = years, "ปี"
}

func ageParts(birth, now time.Time) (years, months int) {
	years = now.Year() - birth.Year()
	months = int(now.Month()) - int(birth.Month())
	if now.Day() < birth.Day() {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}
	return years, months
}

// HNPrefix returns the hospital-number prefix for the given date, using the
// last two digits of the Buddhist calendar year (Gregorian + 543).
func HNPrefix(t time.Time) string {
	return fmt.Sprintf("HN%02d", (t.Year()+543)%100)
}
