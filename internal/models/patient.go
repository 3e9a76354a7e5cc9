package models

type Patient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func (p *Patient) Validate() error {
	if p.Name == "" {
		return requiredField("name")
	}
	if p.Email == "" {
		return requiredField("email")
	}
	return nil
}

func (p *Patient) Person() Person {
	return Person{Kind: PersonKindPatient, Patient: p}
}

// PatientFilter selects patients by an inclusive age range. A nil bound is open.
type PatientFilter struct {
	MinAge *int
	MaxAge *int
}

func (f PatientFilter) Match(p *Patient) bool {
	if f.MinAge != nil && p.Age < *f.MinAge {
		return false
	}
	if f.MaxAge != nil && p.Age > *f.MaxAge {
		return false
	}
	return true
}
