package services

import (
	"context"
	"log"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
)

type DoctorService struct {
	store store.DoctorStore
}

func NewDoctorService(s store.DoctorStore) *DoctorService {
	return &DoctorService{store: s}
}

func (s *DoctorService) List(ctx context.Context) ([]*models.Doctor, error) {
	return s.store.ListDoctors(ctx, models.DoctorFilter{})
}

func (s *DoctorService) ListBySpecialty(ctx context.Context, specialty models.Specialty) ([]*models.Doctor, error) {
	return s.store.ListDoctors(ctx, models.DoctorFilter{Specialty: specialty})
}

type CreateDoctorInput struct {
	Name      string
	Email     string
	Specialty models.Specialty
}

func (s *DoctorService) Create(ctx context.Context, in CreateDoctorInput) (*models.Doctor, error) {
	if in.Name == "" || in.Email == "" || in.Specialty == "" {
		return nil, models.ErrMissingField
	}
	d := &models.Doctor{Name: in.Name, Email: in.Email, Specialty: in.Specialty}
	if err := s.store.CreateDoctor(ctx, d); err != nil {
		log.Printf("CreateDoctor: insert failed: %v", err)
		return nil, err
	}
	log.Printf("CreateDoctor: created doctor %s", d.ID)
	return d, nil
}

type UpdateDoctorInput struct {
	Name      Field[string]
	Email     Field[string]
	Specialty Field[models.Specialty]
}

func (s *DoctorService) Update(ctx context.Context, id string, in UpdateDoctorInput) (*models.Doctor, error) {
	d, err := s.store.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Name.apply(&d.Name)
	in.Email.apply(&d.Email)
	in.Specialty.apply(&d.Specialty)
	if err := s.store.UpdateDoctor(ctx, d); err != nil {
		log.Printf("UpdateDoctor: update of %s failed: %v", id, err)
		return nil, err
	}
	return d, nil
}

// Delete reports whether a doctor was removed. Appointments that reference it
// are kept.
func (s *DoctorService) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.DeleteDoctor(ctx, id)
}
