// Package services holds the clinic's business rules: presence checks on
// create, partial updates and reference checks for appointments.
package services

import "github.com/harentsoaR/clinic-api/internal/store"

type Services struct {
	Doctors      *DoctorService
	Patients     *PatientService
	Appointments *AppointmentService
}

func New(s store.Store) *Services {
	return &Services{
		Doctors:      NewDoctorService(s),
		Patients:     NewPatientService(s),
		Appointments: NewAppointmentService(s, s, s),
	}
}

// Field is one argument of a partial update. Set reports whether the caller
// supplied it; Null marks an explicit null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// Present reports whether the field carries a non-null value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

// apply overwrites *dst when the field carries a value.
func (f Field[T]) apply(dst *T) {
	if f.Present() {
		*dst = f.Value
	}
}

// applyOptional overwrites an optional field. An explicit null clears it.
func (f Field[T]) applyOptional(dst **T) {
	switch {
	case !f.Set:
	case f.Null:
		*dst = nil
	default:
		v := f.Value
		*dst = &v
	}
}
