package services

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
)

// --- MockAppointmentStore ---
var _ store.AppointmentStore = (*MockAppointmentStore)(nil)

type MockAppointmentStore struct {
	CreateFunc func(ctx context.Context, a *models.Appointment) error
	GetFunc    func(ctx context.Context, id string) (*models.Appointment, error)
	UpdateFunc func(ctx context.Context, a *models.Appointment) error

	CreateCallCount int32
	UpdateCallCount int32
}

func (m *MockAppointmentStore) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	a.ID = "a1"
	return nil
}

func (m *MockAppointmentStore) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, &models.NotFoundError{Entity: models.EntityAppointment}
}

func (m *MockAppointmentStore) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]*models.Appointment, error) {
	return nil, nil
}

func (m *MockAppointmentStore) UpdateAppointment(ctx context.Context, a *models.Appointment) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *MockAppointmentStore) DeleteAppointment(ctx context.Context, id string) (bool, error) {
	return false, errors.New("DeleteAppointment not implemented in mock")
}

// --- MockDoctorStore ---
var _ store.DoctorStore = (*MockDoctorStore)(nil)

type MockDoctorStore struct {
	Doctors map[string]*models.Doctor
	Err     error
}

func (m *MockDoctorStore) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	return errors.New("CreateDoctor not implemented in mock")
}

func (m *MockDoctorStore) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if d, ok := m.Doctors[id]; ok {
		return d, nil
	}
	return nil, &models.NotFoundError{Entity: models.EntityDoctor}
}

func (m *MockDoctorStore) GetDoctors(ctx context.Context, ids []string) (map[string]*models.Doctor, error) {
	return nil, errors.New("GetDoctors not implemented in mock")
}

func (m *MockDoctorStore) ListDoctors(ctx context.Context, filter models.DoctorFilter) ([]*models.Doctor, error) {
	return nil, errors.New("ListDoctors not implemented in mock")
}

func (m *MockDoctorStore) UpdateDoctor(ctx context.Context, d *models.Doctor) error {
	return errors.New("UpdateDoctor not implemented in mock")
}

func (m *MockDoctorStore) DeleteDoctor(ctx context.Context, id string) (bool, error) {
	return false, errors.New("DeleteDoctor not implemented in mock")
}

// --- MockPatientStore ---
var _ store.PatientStore = (*MockPatientStore)(nil)

type MockPatientStore struct {
	Patients map[string]*models.Patient
}

func (m *MockPatientStore) CreatePatient(ctx context.Context, p *models.Patient) error {
	return errors.New("CreatePatient not implemented in mock")
}

func (m *MockPatientStore) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	if p, ok := m.Patients[id]; ok {
		return p, nil
	}
	return nil, &models.NotFoundError{Entity: models.EntityPatient}
}

func (m *MockPatientStore) GetPatients(ctx context.Context, ids []string) (map[string]*models.Patient, error) {
	return nil, errors.New("GetPatients not implemented in mock")
}

func (m *MockPatientStore) ListPatients(ctx context.Context, filter models.PatientFilter) ([]*models.Patient, error) {
	return nil, errors.New("ListPatients not implemented in mock")
}

func (m *MockPatientStore) UpdatePatient(ctx context.Context, p *models.Patient) error {
	return errors.New("UpdatePatient not implemented in mock")
}

func (m *MockPatientStore) DeletePatient(ctx context.Context, id string) (bool, error) {
	return false, errors.New("DeletePatient not implemented in mock")
}
