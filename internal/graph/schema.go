// Package graph exposes the clinic services as a GraphQL schema served over
// HTTP.
package graph

import (
	"context"

	"github.com/botobag/artemis/graphql"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/services"
)

// types holds the object types shared by the query and mutation roots.
type types struct {
	specialty   graphql.Enum
	person      *graphql.InterfaceConfig
	doctor      graphql.Object
	patient     graphql.Object
	appointment graphql.Object
}

// NewSchema builds the clinic schema with resolvers bound to svc.
func NewSchema(svc *services.Services) (graphql.Schema, error) {
	t, err := newTypes()
	if err != nil {
		return nil, err
	}
	r := &resolver{svc: svc}

	query, err := graphql.NewObject(r.queryConfig(t))
	if err != nil {
		return nil, err
	}
	mutation, err := graphql.NewObject(r.mutationConfig(t))
	if err != nil {
		return nil, err
	}
	return graphql.NewSchema(&graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
		Types:    []graphql.Type{t.doctor, t.patient},
	})
}

func newTypes() (*types, error) {
	specialtyValues := graphql.EnumValueDefinitionMap{}
	for _, s := range models.Specialties {
		specialtyValues[string(s)] = graphql.EnumValueDefinition{}
	}
	specialty, err := graphql.NewEnum(&graphql.EnumConfig{
		Name:   "Specialty",
		Values: specialtyValues,
	})
	if err != nil {
		return nil, err
	}

	personFields := func() graphql.Fields {
		return graphql.Fields{
			"id":    {Type: graphql.NonNullOfType(graphql.ID())},
			"name":  {Type: graphql.NonNullOfType(graphql.String())},
			"email": {Type: graphql.NonNullOfType(graphql.String())},
		}
	}

	var doctor, patient graphql.Object
	t := &types{specialty: specialty}
	t.person = &graphql.InterfaceConfig{
		Name:   "Person",
		Fields: personFields(),
		TypeResolver: graphql.TypeResolverFunc(func(ctx context.Context, value interface{}, info graphql.ResolveInfo) (graphql.Object, error) {
			return resolvePersonType(value, doctor, patient)
		}),
	}

	doctorFields := personFields()
	for name, field := range doctorFields {
		field.Resolver = personResolver(name)
		doctorFields[name] = field
	}
	doctorFields["specialty"] = graphql.FieldConfig{
		Type: graphql.NonNullOfType(specialty),
		Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
			// Enum values are keyed by their plain string names.
			return string(asDoctor(source).Specialty), nil
		}),
	}
	doctor, err = graphql.NewObject(&graphql.ObjectConfig{
		Name:       "Doctor",
		Interfaces: []graphql.InterfaceTypeDefinition{t.person},
		Fields:     doctorFields,
	})
	if err != nil {
		return nil, err
	}

	patientFields := personFields()
	for name, field := range patientFields {
		field.Resolver = personResolver(name)
		patientFields[name] = field
	}
	patientFields["age"] = graphql.FieldConfig{
		Type: graphql.NonNullOfType(graphql.Int()),
		Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
			return asPatient(source).Age, nil
		}),
	}
	patient, err = graphql.NewObject(&graphql.ObjectConfig{
		Name:       "Patient",
		Interfaces: []graphql.InterfaceTypeDefinition{t.person},
		Fields:     patientFields,
	})
	if err != nil {
		return nil, err
	}
	t.doctor, t.patient = doctor, patient

	appointment, err := graphql.NewObject(&graphql.ObjectConfig{
		Name: "Appointment",
		Fields: graphql.Fields{
			"id": {
				Type: graphql.NonNullOfType(graphql.ID()),
				Resolver: appointmentField(func(a *models.Appointment) interface{} {
					return a.ID
				}),
			},
			"date": {
				Type: graphql.NonNullOfType(graphql.String()),
				Resolver: appointmentField(func(a *models.Appointment) interface{} {
					return models.FormatDate(a.Date)
				}),
			},
			"doctor": {
				Type: graphql.NonNullOfType(doctor),
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return loadersFrom(info).LoadDoctor(source.(*models.Appointment).DoctorID)
				}),
			},
			"patient": {
				Type: graphql.NonNullOfType(patient),
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return loadersFrom(info).LoadPatient(source.(*models.Appointment).PatientID)
				}),
			},
			"duration": {
				Type: graphql.T(graphql.Int()),
				Resolver: appointmentField(func(a *models.Appointment) interface{} {
					if a.Duration == nil {
						return nil
					}
					return *a.Duration
				}),
			},
			"notes": {
				Type: graphql.T(graphql.String()),
				Resolver: appointmentField(func(a *models.Appointment) interface{} {
					return optionalString(a.Notes)
				}),
			},
			"reason": {
				Type: graphql.T(graphql.String()),
				Resolver: appointmentField(func(a *models.Appointment) interface{} {
					return optionalString(a.Reason)
				}),
			},
		},
	})
	if err != nil {
		return nil, err
	}
	t.appointment = appointment
	return t, nil
}

// personResolver reads one of the shared Person fields from a doctor or a
// patient.
func personResolver(field string) graphql.FieldResolver {
	return graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		p, err := asPerson(source)
		if err != nil {
			return nil, err
		}
		switch field {
		case "id":
			return p.ID(), nil
		case "name":
			return p.Name(), nil
		default:
			return p.Email(), nil
		}
	})
}

func appointmentField(fn func(*models.Appointment) interface{}) graphql.FieldResolver {
	return graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		return fn(source.(*models.Appointment)), nil
	})
}

func optionalString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
