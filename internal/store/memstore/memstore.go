// Package memstore keeps the clinic collections in process memory. It backs
// STORE_DRIVER=memory and the test suites.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
)

var _ store.Store = (*Store)(nil)

// collection is an insertion-ordered map of documents.
type collection[T any] struct {
	order []string
	docs  map[string]*T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{docs: map[string]*T{}}
}

func (c *collection[T]) put(id string, doc *T) {
	if _, ok := c.docs[id]; !ok {
		c.order = append(c.order, id)
	}
	c.docs[id] = doc
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.docs[id]; !ok {
		return false
	}
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection[T]) each(fn func(*T)) {
	for _, id := range c.order {
		fn(c.docs[id])
	}
}

type Store struct {
	mu           sync.RWMutex
	opts         store.Options
	doctors      *collection[models.Doctor]
	patients     *collection[models.Patient]
	appointments *collection[models.Appointment]
}

func New(opts store.Options) *Store {
	return &Store{
		opts:         opts,
		doctors:      newCollection[models.Doctor](),
		patients:     newCollection[models.Patient](),
		appointments: newCollection[models.Appointment](),
	}
}

func (s *Store) Ping(ctx context.Context) error  { return ctx.Err() }
func (s *Store) Close(ctx context.Context) error { return nil }

func emailTaken[T any](c *collection[T], email, selfID string, get func(*T) (string, string)) bool {
	for _, doc := range c.docs {
		id, e := get(doc)
		if id != selfID && e == email {
			return true
		}
	}
	return false
}

func doctorKey(d *models.Doctor) (string, string)   { return d.ID, d.Email }
func patientKey(p *models.Patient) (string, string) { return p.ID, p.Email }

// --- Doctors ---

func (s *Store) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.UniqueDoctorEmail && emailTaken(s.doctors, d.Email, "", doctorKey) {
		return &models.DuplicateKeyError{Entity: models.EntityDoctor, Field: "email"}
	}
	d.ID = uuid.NewString()
	cp := *d
	s.doctors.put(d.ID, &cp)
	return nil
}

func (s *Store) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.doctors.docs[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: models.EntityDoctor}
	}
	cp := *d
	return &cp, nil
}

func (s *Store) GetDoctors(ctx context.Context, ids []string) (map[string]*models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*models.Doctor, len(ids))
	for _, id := range ids {
		if d, ok := s.doctors.docs[id]; ok {
			cp := *d
			out[id] = &cp
		}
	}
	return out, nil
}

func (s *Store) ListDoctors(ctx context.Context, filter models.DoctorFilter) ([]*models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Doctor{}
	s.doctors.each(func(d *models.Doctor) {
		if filter.Specialty != "" && d.Specialty != filter.Specialty {
			return
		}
		cp := *d
		out = append(out, &cp)
	})
	return out, nil
}

func (s *Store) UpdateDoctor(ctx context.Context, d *models.Doctor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doctors.docs[d.ID]; !ok {
		return &models.NotFoundError{Entity: models.EntityDoctor}
	}
	if s.opts.UniqueDoctorEmail && emailTaken(s.doctors, d.Email, d.ID, doctorKey) {
		return &models.DuplicateKeyError{Entity: models.EntityDoctor, Field: "email"}
	}
	cp := *d
	s.doctors.put(d.ID, &cp)
	return nil
}

func (s *Store) DeleteDoctor(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doctors.remove(id), nil
}

// --- Patients ---

func (s *Store) CreatePatient(ctx context.Context, p *models.Patient) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.UniquePatientEmail && emailTaken(s.patients, p.Email, "", patientKey) {
		return &models.DuplicateKeyError{Entity: models.EntityPatient, Field: "email"}
	}
	p.ID = uuid.NewString()
	cp := *p
	s.patients.put(p.ID, &cp)
	return nil
}

func (s *Store) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients.docs[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: models.EntityPatient}
	}
	cp := *p
	return &cp, nil
}

func (s *Store) GetPatients(ctx context.Context, ids []string) (map[string]*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*models.Patient, len(ids))
	for _, id := range ids {
		if p, ok := s.patients.docs[id]; ok {
			cp := *p
			out[id] = &cp
		}
	}
	return out, nil
}

func (s *Store) ListPatients(ctx context.Context, filter models.PatientFilter) ([]*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Patient{}
	s.patients.each(func(p *models.Patient) {
		if !filter.Match(p) {
			return
		}
		cp := *p
		out = append(out, &cp)
	})
	return out, nil
}

func (s *Store) UpdatePatient(ctx context.Context, p *models.Patient) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients.docs[p.ID]; !ok {
		return &models.NotFoundError{Entity: models.EntityPatient}
	}
	if s.opts.UniquePatientEmail && emailTaken(s.patients, p.Email, p.ID, patientKey) {
		return &models.DuplicateKeyError{Entity: models.EntityPatient, Field: "email"}
	}
	cp := *p
	s.patients.put(p.ID, &cp)
	return nil
}

func (s *Store) DeletePatient(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patients.remove(id), nil
}

// --- Appointments ---

func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.NewString()
	s.appointments.put(a.ID, cloneAppointment(a))
	return nil
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appointments.docs[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: models.EntityAppointment}
	}
	return cloneAppointment(a), nil
}

func (s *Store) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Appointment{}
	s.appointments.each(func(a *models.Appointment) {
		if filter.Match(a) {
			out = append(out, cloneAppointment(a))
		}
	})
	return out, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, a *models.Appointment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments.docs[a.ID]; !ok {
		return &models.NotFoundError{Entity: models.EntityAppointment}
	}
	s.appointments.put(a.ID, cloneAppointment(a))
	return nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appointments.remove(id), nil
}

// cloneAppointment copies the optional fields so callers never share pointers
// with stored documents.
func cloneAppointment(a *models.Appointment) *models.Appointment {
	cp := *a
	if a.Duration != nil {
		v := *a.Duration
		cp.Duration = &v
	}
	if a.Notes != nil {
		v := *a.Notes
		cp.Notes = &v
	}
	if a.Reason != nil {
		v := *a.Reason
		cp.Reason = &v
	}
	return &cp
}
