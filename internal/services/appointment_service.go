package services

import (
	"context"
	"log"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
)

type AppointmentService struct {
	appointments store.AppointmentStore
	doctors      store.DoctorStore
	patients     store.PatientStore
}

func NewAppointmentService(a store.AppointmentStore, d store.DoctorStore, p store.PatientStore) *AppointmentService {
	return &AppointmentService{appointments: a, doctors: d, patients: p}
}

// ResolveDoctor returns the doctor an appointment may reference, or a
// *models.NotFoundError.
func (s *AppointmentService) ResolveDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	if id == "" {
		return nil, &models.NotFoundError{Entity: models.EntityDoctor}
	}
	return s.doctors.GetDoctor(ctx, id)
}

// ResolvePatient is the patient counterpart of ResolveDoctor.
func (s *AppointmentService) ResolvePatient(ctx context.Context, id string) (*models.Patient, error) {
	if id == "" {
		return nil, &models.NotFoundError{Entity: models.EntityPatient}
	}
	return s.patients.GetPatient(ctx, id)
}

func (s *AppointmentService) List(ctx context.Context) ([]*models.Appointment, error) {
	return s.appointments.ListAppointments(ctx, models.AppointmentFilter{})
}

func (s *AppointmentService) ListByDoctor(ctx context.Context, doctorID string) ([]*models.Appointment, error) {
	return s.appointments.ListAppointments(ctx, models.AppointmentFilter{DoctorID: doctorID})
}

func (s *AppointmentService) ListByPatient(ctx context.Context, patientID string) ([]*models.Appointment, error) {
	return s.appointments.ListAppointments(ctx, models.AppointmentFilter{PatientID: patientID})
}

type CreateAppointmentInput struct {
	Date      string
	DoctorID  string
	PatientID string
	Reason    *string
	Duration  *int
	Notes     *string
}

// Create checks the doctor, then the patient, then the date. Nothing is
// written unless all three pass.
func (s *AppointmentService) Create(ctx context.Context, in CreateAppointmentInput) (*models.Appointment, error) {
	if _, err := s.ResolveDoctor(ctx, in.DoctorID); err != nil {
		return nil, err
	}
	if _, err := s.ResolvePatient(ctx, in.PatientID); err != nil {
		return nil, err
	}
	date, err := models.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	a := &models.Appointment{
		Date:      date,
		DoctorID:  in.DoctorID,
		PatientID: in.PatientID,
		Duration:  in.Duration,
		Notes:     in.Notes,
		Reason:    in.Reason,
	}
	if err := s.appointments.CreateAppointment(ctx, a); err != nil {
		log.Printf("CreateAppointment: insert failed: %v", err)
		return nil, err
	}
	log.Printf("CreateAppointment: created appointment %s (doctor %s, patient %s)", a.ID, a.DoctorID, a.PatientID)
	return a, nil
}

type UpdateAppointmentInput struct {
	Date      Field[string]
	DoctorID  Field[string]
	PatientID Field[string]
	Reason    Field[string]
	Duration  Field[int]
	Notes     Field[string]
}

// Update applies the supplied fields. A doctorId or patientId that does not
// resolve aborts the update before anything is written.
func (s *AppointmentService) Update(ctx context.Context, id string, in UpdateAppointmentInput) (*models.Appointment, error) {
	a, err := s.appointments.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.DoctorID.Present() {
		if _, err := s.ResolveDoctor(ctx, in.DoctorID.Value); err != nil {
			return nil, err
		}
		a.DoctorID = in.DoctorID.Value
	}
	if in.PatientID.Present() {
		if _, err := s.ResolvePatient(ctx, in.PatientID.Value); err != nil {
			return nil, err
		}
		a.PatientID = in.PatientID.Value
	}
	if in.Date.Present() {
		date, err := models.ParseDate(in.Date.Value)
		if err != nil {
			return nil, err
		}
		a.Date = date
	}
	in.Reason.applyOptional(&a.Reason)
	in.Duration.applyOptional(&a.Duration)
	in.Notes.applyOptional(&a.Notes)

	if err := s.appointments.UpdateAppointment(ctx, a); err != nil {
		log.Printf("UpdateAppointment: update of %s failed: %v", id, err)
		return nil, err
	}
	return a, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id string) (bool, error) {
	return s.appointments.DeleteAppointment(ctx, id)
}
