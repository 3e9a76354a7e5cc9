package models

type PersonKind int

const (
	PersonKindDoctor PersonKind = iota + 1
	PersonKindPatient
)

func (k PersonKind) String() string {
	switch k {
	case PersonKindDoctor:
		return "Doctor"
	case PersonKindPatient:
		return "Patient"
	}
	return "unknown"
}

// Person is the shared view of doctors and patients. Exactly one of Doctor or
// Patient is set, as named by Kind.
type Person struct {
	Kind    PersonKind
	Doctor  *Doctor
	Patient *Patient
}

func (p Person) ID() string {
	switch p.Kind {
	case PersonKindDoctor:
		return p.Doctor.ID
	case PersonKindPatient:
		return p.Patient.ID
	}
	return ""
}

func (p Person) Name() string {
	switch p.Kind {
	case PersonKindDoctor:
		return p.Doctor.Name
	case PersonKindPatient:
		return p.Patient.Name
	}
	return ""
}

func (p Person) Email() string {
	switch p.Kind {
	case PersonKindDoctor:
		return p.Doctor.Email
	case PersonKindPatient:
		return p.Patient.Email
	}
	return ""
}
