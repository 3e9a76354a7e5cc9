// Package store declares the persistence contracts of the clinic API. Backends
// live in the subpackages mongostore, sqlstore and memstore.
package store

import (
	"context"

	"github.com/harentsoaR/clinic-api/internal/models"
)

// DoctorStore persists doctors. Get and Update report a missing id with a
// *models.NotFoundError. GetDoctors omits ids it cannot find.
type DoctorStore interface {
	CreateDoctor(ctx context.Context, d *models.Doctor) error
	GetDoctor(ctx context.Context, id string) (*models.Doctor, error)
	GetDoctors(ctx context.Context, ids []string) (map[string]*models.Doctor, error)
	ListDoctors(ctx context.Context, filter models.DoctorFilter) ([]*models.Doctor, error)
	UpdateDoctor(ctx context.Context, d *models.Doctor) error
	DeleteDoctor(ctx context.Context, id string) (bool, error)
}

type PatientStore interface {
	CreatePatient(ctx context.Context, p *models.Patient) error
	GetPatient(ctx context.Context, id string) (*models.Patient, error)
	GetPatients(ctx context.Context, ids []string) (map[string]*models.Patient, error)
	ListPatients(ctx context.Context, filter models.PatientFilter) ([]*models.Patient, error)
	UpdatePatient(ctx context.Context, p *models.Patient) error
	DeletePatient(ctx context.Context, id string) (bool, error)
}

type AppointmentStore interface {
	CreateAppointment(ctx context.Context, a *models.Appointment) error
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]*models.Appointment, error)
	UpdateAppointment(ctx context.Context, a *models.Appointment) error
	DeleteAppointment(ctx context.Context, id string) (bool, error)
}

type Store interface {
	DoctorStore
	PatientStore
	AppointmentStore

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Options carries the per-entity uniqueness constraints.
type Options struct {
	UniqueDoctorEmail  bool
	UniquePatientEmail bool
}
