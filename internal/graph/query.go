package graph

import (
	"context"

	"github.com/botobag/artemis/graphql"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/services"
)

type resolver struct {
	svc *services.Services
}

// listOf builds the [T!]! shape every list field of the schema uses.
func listOf(t graphql.Type) graphql.TypeDefinition {
	return graphql.NonNullOf(graphql.ListOf(graphql.NonNullOfType(t)))
}

func (r *resolver) queryConfig(t *types) *graphql.ObjectConfig {
	return &graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"doctors": {
				Type: listOf(t.doctor),
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return r.svc.Doctors.List(ctx)
				}),
			},
			"patients": {
				Type: listOf(t.patient),
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return r.svc.Patients.List(ctx)
				}),
			},
			"appointments": {
				Type: listOf(t.appointment),
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return r.svc.Appointments.List(ctx)
				}),
			},
			"doctorsBySpecialty": {
				Type: listOf(t.doctor),
				Args: graphql.ArgumentConfigMap{
					"specialty": {Type: graphql.NonNullOfType(t.specialty)},
				},
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					specialty, err := specialtyArg(info, "specialty")
					if err != nil {
						return nil, err
					}
					return r.svc.Doctors.ListBySpecialty(ctx, specialty)
				}),
			},
			"patientsByAge": {
				Type: listOf(t.patient),
				Args: graphql.ArgumentConfigMap{
					"minAge": {Type: graphql.T(graphql.Int())},
					"maxAge": {Type: graphql.T(graphql.Int())},
				},
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return r.svc.Patients.ListByAge(ctx, intArg(info, "minAge"), intArg(info, "maxAge"))
				}),
			},
			"appointmentsByDoctor": {
				Type: listOf(t.appointment),
				Args: graphql.ArgumentConfigMap{
					"doctorId": {Type: graphql.NonNullOfType(graphql.ID())},
				},
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return r.svc.Appointments.ListByDoctor(ctx, stringArg(info, "doctorId"))
				}),
			},
			"appointmentsByPatient": {
				Type: listOf(t.appointment),
				Args: graphql.ArgumentConfigMap{
					"patientId": {Type: graphql.NonNullOfType(graphql.ID())},
				},
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return r.svc.Appointments.ListByPatient(ctx, stringArg(info, "patientId"))
				}),
			},
		},
	}
}

func stringArg(info graphql.ResolveInfo, name string) string {
	v, _ := info.Args().Get(name).(string)
	return v
}

func specialtyArg(info graphql.ResolveInfo, name string) (models.Specialty, error) {
	return models.ParseSpecialty(stringArg(info, name))
}

// intArg returns nil for an absent or null argument.
func intArg(info graphql.ResolveInfo, name string) *int {
	if v, ok := info.Args().Get(name).(int); ok {
		return &v
	}
	return nil
}

func optionalStringArg(info graphql.ResolveInfo, name string) *string {
	if v, ok := info.Args().Get(name).(string); ok {
		return &v
	}
	return nil
}

// field turns an optional argument into a partial-update field, keeping
// absent and explicit null apart.
func field[T any](info graphql.ResolveInfo, name string) services.Field[T] {
	v, ok := info.Args().Lookup(name)
	switch {
	case !ok:
		return services.Field[T]{}
	case v == nil:
		return services.Null[T]()
	}
	if tv, ok := v.(T); ok {
		return services.Value(tv)
	}
	return services.Field[T]{}
}
