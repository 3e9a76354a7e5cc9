package graph

import (
	"fmt"

	"github.com/botobag/artemis/graphql"

	"github.com/harentsoaR/clinic-api/internal/models"
)

// resolvePersonType picks the concrete Person object for value. Tagged
// Person values dispatch on their Kind.
func resolvePersonType(value interface{}, doctor, patient graphql.Object) (graphql.Object, error) {
	switch v := value.(type) {
	case *models.Doctor:
		return doctor, nil
	case *models.Patient:
		return patient, nil
	case models.Person:
		switch v.Kind {
		case models.PersonKindDoctor:
			return doctor, nil
		case models.PersonKindPatient:
			return patient, nil
		}
		return nil, fmt.Errorf("person has unknown kind %d", v.Kind)
	}
	return nil, fmt.Errorf("value of type %T is not a Person", value)
}

func asPerson(source interface{}) (models.Person, error) {
	switch v := source.(type) {
	case models.Person:
		return v, nil
	case *models.Doctor:
		return v.Person(), nil
	case *models.Patient:
		return v.Person(), nil
	}
	return models.Person{}, fmt.Errorf("value of type %T is not a Person", source)
}

func asDoctor(source interface{}) *models.Doctor {
	if p, ok := source.(models.Person); ok {
		return p.Doctor
	}
	return source.(*models.Doctor)
}

func asPatient(source interface{}) *models.Patient {
	if p, ok := source.(models.Person); ok {
		return p.Patient
	}
	return source.(*models.Patient)
}
