package services

import (
	"context"
	"log"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
)

type PatientService struct {
	store store.PatientStore
}

func NewPatientService(s store.PatientStore) *PatientService {
	return &PatientService{store: s}
}

func (s *PatientService) List(ctx context.Context) ([]*models.Patient, error) {
	return s.store.ListPatients(ctx, models.PatientFilter{})
}

// ListByAge returns patients whose age lies in [minAge, maxAge]. A nil bound
// leaves that side open.
func (s *PatientService) ListByAge(ctx context.Context, minAge, maxAge *int) ([]*models.Patient, error) {
	return s.store.ListPatients(ctx, models.PatientFilter{MinAge: minAge, MaxAge: maxAge})
}

type CreatePatientInput struct {
	Name  string
	Email string
	Age   *int
}

func (s *PatientService) Create(ctx context.Context, in CreatePatientInput) (*models.Patient, error) {
	if in.Name == "" || in.Email == "" || in.Age == nil {
		return nil, models.ErrMissingField
	}
	p := &models.Patient{Name: in.Name, Email: in.Email, Age: *in.Age}
	if err := s.store.CreatePatient(ctx, p); err != nil {
		log.Printf("CreatePatient: insert failed: %v", err)
		return nil, err
	}
	log.Printf("CreatePatient: created patient %s", p.ID)
	return p, nil
}

type UpdatePatientInput struct {
	Name  Field[string]
	Email Field[string]
	Age   Field[int]
}

func (s *PatientService) Update(ctx context.Context, id string, in UpdatePatientInput) (*models.Patient, error) {
	p, err := s.store.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Name.apply(&p.Name)
	in.Email.apply(&p.Email)
	in.Age.apply(&p.Age)
	if err := s.store.UpdatePatient(ctx, p); err != nil {
		log.Printf("UpdatePatient: update of %s failed: %v", id, err)
		return nil, err
	}
	return p, nil
}

func (s *PatientService) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.DeletePatient(ctx, id)
}
