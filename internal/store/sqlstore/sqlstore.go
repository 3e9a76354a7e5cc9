// Package sqlstore is the PostgreSQL backend of the clinic API, built on gorm.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	db   *gorm.DB
	opts store.Options
}

// Open connects to the PostgreSQL database at dsn and migrates the schema.
func Open(ctx context.Context, dsn string, opts store.Options) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	s := New(db, opts)
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func New(db *gorm.DB, opts store.Options) *Store {
	return &Store{db: db, opts: opts}
}

// Migrate creates the tables and the unique email indexes enabled in the options.
func (s *Store) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&doctorRow{}, &patientRow{}, &appointmentRow{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	unique := map[string]bool{"doctors": s.opts.UniqueDoctorEmail, "patients": s.opts.UniquePatientEmail}
	for table, enabled := range unique {
		if !enabled {
			continue
		}
		stmt := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_email ON %s (email)", table, table)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create %s email index: %w", table, err)
		}
		log.Printf("Migrate: unique email index ready on %s", table)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func writeError(entity string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &models.DuplicateKeyError{Entity: entity, Field: "email"}
	}
	return err
}

// validID reports whether id can be a primary key. Anything else cannot match
// a row and is treated as missing.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}

func (s *Store) first(ctx context.Context, entity, id string, out interface{}) error {
	if !validID(id) {
		return &models.NotFoundError{Entity: entity}
	}
	err := s.db.WithContext(ctx).Where("id = ?", id).First(out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.NotFoundError{Entity: entity}
	}
	return err
}

// save replaces the row with the given primary key, leaving created_at alone.
func (s *Store) save(ctx context.Context, entity, id string, row interface{}) error {
	if !validID(id) {
		return &models.NotFoundError{Entity: entity}
	}
	res := s.db.WithContext(ctx).Model(row).Where("id = ?", id).Select("*").Omit("id", "created_at").Updates(row)
	if res.Error != nil {
		return writeError(entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{Entity: entity}
	}
	return nil
}

func (s *Store) remove(ctx context.Context, id string, row interface{}) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --- Doctors ---

func (s *Store) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	row := doctorRow{ID: uuid.NewString(), Name: d.Name, Email: d.Email, Specialty: string(d.Specialty)}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return writeError(models.EntityDoctor, err)
	}
	d.ID = row.ID
	return nil
}

func (s *Store) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	var row doctorRow
	if err := s.first(ctx, models.EntityDoctor, id, &row); err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) GetDoctors(ctx context.Context, ids []string) (map[string]*models.Doctor, error) {
	var rows []doctorRow
	if ids = validIDs(ids); len(ids) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, err
		}
	}
	out := make(map[string]*models.Doctor, len(rows))
	for _, row := range rows {
		out[row.ID] = row.model()
	}
	return out, nil
}

func (s *Store) ListDoctors(ctx context.Context, filter models.DoctorFilter) ([]*models.Doctor, error) {
	q := s.db.WithContext(ctx).Order("created_at")
	if filter.Specialty != "" {
		q = q.Where("specialty = ?", string(filter.Specialty))
	}
	var rows []doctorRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.Doctor, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out, nil
}

func (s *Store) UpdateDoctor(ctx context.Context, d *models.Doctor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	row := doctorRow{ID: d.ID, Name: d.Name, Email: d.Email, Specialty: string(d.Specialty)}
	return s.save(ctx, models.EntityDoctor, d.ID, &row)
}

func (s *Store) DeleteDoctor(ctx context.Context, id string) (bool, error) {
	return s.remove(ctx, id, &doctorRow{})
}

// --- Patients ---

func (s *Store) CreatePatient(ctx context.Context, p *models.Patient) error {
	if err := p.Validate(); err != nil {
		return err
	}
	row := patientRow{ID: uuid.NewString(), Name: p.Name, Email: p.Email, Age: p.Age}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return writeError(models.EntityPatient, err)
	}
	p.ID = row.ID
	return nil
}

func (s *Store) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	var row patientRow
	if err := s.first(ctx, models.EntityPatient, id, &row); err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) GetPatients(ctx context.Context, ids []string) (map[string]*models.Patient, error) {
	var rows []patientRow
	if ids = validIDs(ids); len(ids) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, err
		}
	}
	out := make(map[string]*models.Patient, len(rows))
	for _, row := range rows {
		out[row.ID] = row.model()
	}
	return out, nil
}

func (s *Store) ListPatients(ctx context.Context, filter models.PatientFilter) ([]*models.Patient, error) {
	q := s.db.WithContext(ctx).Order("created_at")
	if filter.MinAge != nil {
		q = q.Where("age >= ?", *filter.MinAge)
	}
	if filter.MaxAge != nil {
		q = q.Where("age <= ?", *filter.MaxAge)
	}
	var rows []patientRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.Patient, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out, nil
}

func (s *Store) UpdatePatient(ctx context.Context, p *models.Patient) error {
	if err := p.Validate(); err != nil {
		return err
	}
	row := patientRow{ID: p.ID, Name: p.Name, Email: p.Email, Age: p.Age}
	return s.save(ctx, models.EntityPatient, p.ID, &row)
}

func (s *Store) DeletePatient(ctx context.Context, id string) (bool, error) {
	return s.remove(ctx, id, &patientRow{})
}

// --- Appointments ---

func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !validID(a.DoctorID) {
		return &models.NotFoundError{Entity: models.EntityDoctor}
	}
	if !validID(a.PatientID) {
		return &models.NotFoundError{Entity: models.EntityPatient}
	}
	row := newAppointmentRow(a)
	row.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	a.ID = row.ID
	return nil
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var row appointmentRow
	if err := s.first(ctx, models.EntityAppointment, id, &row); err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]*models.Appointment, error) {
	conds := map[string]string{}
	for column, id := range map[string]string{"doctor_id": filter.DoctorID, "patient_id": filter.PatientID} {
		if id == "" {
			continue
		}
		if !validID(id) {
			return []*models.Appointment{}, nil
		}
		conds[column] = id
	}
	q := s.db.WithContext(ctx).Order("created_at")
	for column, id := range conds {
		q = q.Where(column+" = ?", id)
	}
	var rows []appointmentRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, a *models.Appointment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !validID(a.DoctorID) {
		return &models.NotFoundError{Entity: models.EntityDoctor}
	}
	if !validID(a.PatientID) {
		return &models.NotFoundError{Entity: models.EntityPatient}
	}
	row := newAppointmentRow(a)
	return s.save(ctx, models.EntityAppointment, a.ID, &row)
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) (bool, error) {
	return s.remove(ctx, id, &appointmentRow{})
}
