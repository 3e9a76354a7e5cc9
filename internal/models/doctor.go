package models

import "strings"

type Specialty string

const (
	SpecialtyCardiology      Specialty = "CARDIOLOGY"
	SpecialtyDermatology     Specialty = "DERMATOLOGY"
	SpecialtyPediatrics      Specialty = "PEDIATRICS"
	SpecialtyGeneralMedicine Specialty = "GENERAL_MEDICINE"
)

// Specialties lists every accepted specialty in schema order.
var Specialties = []Specialty{
	SpecialtyCardiology,
	SpecialtyDermatology,
	SpecialtyPediatrics,
	SpecialtyGeneralMedicine,
}

func (s Specialty) Valid() bool {
	for _, v := range Specialties {
		if s == v {
			return true
		}
	}
	return false
}

// ParseSpecialty accepts the enum name in any case.
func ParseSpecialty(s string) (Specialty, error) {
	sp := Specialty(strings.ToUpper(strings.TrimSpace(s)))
	if !sp.Valid() {
		return "", invalidEnum("specialty", s)
	}
	return sp, nil
}

type Doctor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Specialty Specialty `json:"specialty"`
}

// Validate checks the constraints every stored doctor must satisfy.
func (d *Doctor) Validate() error {
	switch {
	case d.Name == "":
		return requiredField("name")
	case d.Email == "":
		return requiredField("email")
	case d.Specialty == "":
		return requiredField("specialty")
	case !d.Specialty.Valid():
		return invalidEnum("specialty", string(d.Specialty))
	}
	return nil
}

func (d *Doctor) Person() Person {
	return Person{Kind: PersonKindDoctor, Doctor: d}
}

type DoctorFilter struct {
	Specialty Specialty
}
