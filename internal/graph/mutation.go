package graph

import (
	"context"

	"github.com/botobag/artemis/graphql"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/services"
)

func (r *resolver) mutationConfig(t *types) *graphql.ObjectConfig {
	nonNullString := graphql.NonNullOfType(graphql.String())
	nonNullID := graphql.NonNullOfType(graphql.ID())
	optString := graphql.T(graphql.String())
	optInt := graphql.T(graphql.Int())
	optID := graphql.T(graphql.ID())

	return &graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createDoctor": {
				Type: graphql.NonNullOfType(t.doctor),
				Args: graphql.ArgumentConfigMap{
					"name":      {Type: nonNullString},
					"email":     {Type: nonNullString},
					"specialty": {Type: graphql.NonNullOfType(t.specialty)},
				},
				Resolver: graphql.FieldResolverFunc(r.createDoctor),
			},
			"updateDoctor": {
				Type: graphql.T(t.doctor),
				Args: graphql.ArgumentConfigMap{
					"id":        {Type: nonNullID},
					"name":      {Type: optString},
					"email":     {Type: optString},
					"specialty": {Type: graphql.T(t.specialty)},
				},
				Resolver: graphql.FieldResolverFunc(r.updateDoctor),
			},
			"deleteDoctor": {
				Type: graphql.T(graphql.Boolean()),
				Args: graphql.ArgumentConfigMap{"id": {Type: nonNullID}},
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					id := stringArg(info, "id")
					loadersFrom(info).ForgetDoctor(id)
					return r.svc.Doctors.Delete(ctx, id)
				}),
			},
			"createPatient": {
				Type: graphql.NonNullOfType(t.patient),
				Args: graphql.ArgumentConfigMap{
					"name":  {Type: nonNullString},
					"email": {Type: nonNullString},
					"age":   {Type: graphql.NonNullOfType(graphql.Int())},
				},
				Resolver: graphql.FieldResolverFunc(r.createPatient),
			},
			"updatePatient": {
				Type: graphql.T(t.patient),
				Args: graphql.ArgumentConfigMap{
					"id":    {Type: nonNullID},
					"name":  {Type: optString},
					"email": {Type: optString},
					"age":   {Type: optInt},
				},
				Resolver: graphql.FieldResolverFunc(r.updatePatient),
			},
			"deletePatient": {
				Type: graphql.T(graphql.Boolean()),
				Args: graphql.ArgumentConfigMap{"id": {Type: nonNullID}},
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					id := stringArg(info, "id")
					loadersFrom(info).ForgetPatient(id)
					return r.svc.Patients.Delete(ctx, id)
				}),
			},
			"createAppointment": {
				Type: graphql.NonNullOfType(t.appointment),
				Args: graphql.ArgumentConfigMap{
					"date":      {Type: nonNullString},
					"doctorId":  {Type: nonNullID},
					"patientId": {Type: nonNullID},
					"reason":    {Type: optString},
					"duration":  {Type: optInt},
					"notes":     {Type: optString},
				},
				Resolver: graphql.FieldResolverFunc(r.createAppointment),
			},
			"updateAppointment": {
				Type: graphql.T(t.appointment),
				Args: graphql.ArgumentConfigMap{
					"id":        {Type: nonNullID},
					"date":      {Type: optString},
					"doctorId":  {Type: optID},
					"patientId": {Type: optID},
					"reason":    {Type: optString},
					"duration":  {Type: optInt},
					"notes":     {Type: optString},
				},
				Resolver: graphql.FieldResolverFunc(r.updateAppointment),
			},
			"deleteAppointment": {
				Type: graphql.T(graphql.Boolean()),
				Args: graphql.ArgumentConfigMap{"id": {Type: nonNullID}},
				Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return r.svc.Appointments.Delete(ctx, stringArg(info, "id"))
				}),
			},
		},
	}
}

func (r *resolver) createDoctor(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	specialty, err := specialtyArg(info, "specialty")
	if err != nil {
		return nil, err
	}
	return r.svc.Doctors.Create(ctx, services.CreateDoctorInput{
		Name:      stringArg(info, "name"),
		Email:     stringArg(info, "email"),
		Specialty: specialty,
	})
}

func (r *resolver) updateDoctor(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	id := stringArg(info, "id")
	in := services.UpdateDoctorInput{
		Name:  field[string](info, "name"),
		Email: field[string](info, "email"),
	}
	if specialty := field[string](info, "specialty"); specialty.Present() {
		s, err := models.ParseSpecialty(specialty.Value)
		if err != nil {
			return nil, err
		}
		in.Specialty = services.Value(s)
	}
	d, err := r.svc.Doctors.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	loadersFrom(info).ForgetDoctor(id)
	return d, nil
}

func (r *resolver) createPatient(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return r.svc.Patients.Create(ctx, services.CreatePatientInput{
		Name:  stringArg(info, "name"),
		Email: stringArg(info, "email"),
		Age:   intArg(info, "age"),
	})
}

func (r *resolver) updatePatient(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	id := stringArg(info, "id")
	p, err := r.svc.Patients.Update(ctx, id, services.UpdatePatientInput{
		Name:  field[string](info, "name"),
		Email: field[string](info, "email"),
		Age:   field[int](info, "age"),
	})
	if err != nil {
		return nil, err
	}
	loadersFrom(info).ForgetPatient(id)
	return p, nil
}

func (r *resolver) createAppointment(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return r.svc.Appointments.Create(ctx, services.CreateAppointmentInput{
		Date:      stringArg(info, "date"),
		DoctorID:  stringArg(info, "doctorId"),
		PatientID: stringArg(info, "patientId"),
		Reason:    optionalStringArg(info, "reason"),
		Duration:  intArg(info, "duration"),
		Notes:     optionalStringArg(info, "notes"),
	})
}

func (r *resolver) updateAppointment(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return r.svc.Appointments.Update(ctx, stringArg(info, "id"), services.UpdateAppointmentInput{
		Date:      field[string](info, "date"),
		DoctorID:  field[string](info, "doctorId"),
		PatientID: field[string](info, "patientId"),
		Reason:    field[string](info, "reason"),
		Duration:  field[int](info, "duration"),
		Notes:     field[string](info, "notes"),
	})
}
