package sqlstore

import (
	"time"

	"github.com/harentsoaR/clinic-api/internal/models"
)

type doctorRow struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Specialty string `gorm:"not null;index"`
	CreatedAt time.Time
}

func (doctorRow) TableName() string { return "doctors" }

func (r doctorRow) model() *models.Doctor {
	return &models.Doctor{ID: r.ID, Name: r.Name, Email: r.Email, Specialty: models.Specialty(r.Specialty)}
}

type patientRow struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Age       int    `gorm:"not null;index"`
	CreatedAt time.Time
}

func (patientRow) TableName() string { return "patients" }

func (r patientRow) model() *models.Patient {
	return &models.Patient{ID: r.ID, Name: r.Name, Email: r.Email, Age: r.Age}
}

// appointmentRow keeps plain reference columns without foreign keys, so
// deleting a doctor or patient leaves its appointments untouched.
type appointmentRow struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Date      time.Time `gorm:"not null"`
	DoctorID  string    `gorm:"type:uuid;not null;index"`
	PatientID string    `gorm:"type:uuid;not null;index"`
	Duration  *int
	Notes     *string
	Reason    *string
	CreatedAt time.Time
}

func (appointmentRow) TableName() string { return "appointments" }

func (r appointmentRow) model() *models.Appointment {
	return &models.Appointment{
		ID:        r.ID,
		Date:      r.Date.UTC(),
		DoctorID:  r.DoctorID,
		PatientID: r.PatientID,
		Duration:  r.Duration,
		Notes:     r.Notes,
		Reason:    r.Reason,
	}
}

func newAppointmentRow(a *models.Appointment) appointmentRow {
	return appointmentRow{
		ID:        a.ID,
		Date:      a.Date.UTC(),
		DoctorID:  a.DoctorID,
		PatientID: a.PatientID,
		Duration:  a.Duration,
		Notes:     a.Notes,
		Reason:    a.Reason,
	}
}
