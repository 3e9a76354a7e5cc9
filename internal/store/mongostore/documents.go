package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinic-api/internal/models"
)

type doctorDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Specialty string             `bson:"specialty"`
}

func (d doctorDoc) model() *models.Doctor {
	return &models.Doctor{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Specialty: models.Specialty(d.Specialty),
	}
}

type patientDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
	Age   int                `bson:"age"`
}

func (p patientDoc) model() *models.Patient {
	return &models.Patient{ID: p.ID.Hex(), Name: p.Name, Email: p.Email, Age: p.Age}
}

type appointmentDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Date     time.Time          `bson:"date"`
	Doctor   primitive.ObjectID `bson:"doctor"`
	Patient  primitive.ObjectID `bson:"patient"`
	Duration *int               `bson:"duration,omitempty"`
	Notes    *string            `bson:"notes,omitempty"`
	Reason   *string            `bson:"reason,omitempty"`
}

func (a appointmentDoc) model() *models.Appointment {
	return &models.Appointment{
		ID:        a.ID.Hex(),
		Date:      a.Date.UTC(),
		DoctorID:  a.Doctor.Hex(),
		PatientID: a.Patient.Hex(),
		Duration:  a.Duration,
		Notes:     a.Notes,
		Reason:    a.Reason,
	}
}

func newAppointmentDoc(a *models.Appointment) (appointmentDoc, error) {
	doctorID, err := primitive.ObjectIDFromHex(a.DoctorID)
	if err != nil {
		return appointmentDoc{}, &models.NotFoundError{Entity: models.EntityDoctor}
	}
	patientID, err := primitive.ObjectIDFromHex(a.PatientID)
	if err != nil {
		return appointmentDoc{}, &models.NotFoundError{Entity: models.EntityPatient}
	}
	return appointmentDoc{
		Date:     a.Date,
		Doctor:   doctorID,
		Patient:  patientID,
		Duration: a.Duration,
		Notes:    a.Notes,
		Reason:   a.Reason,
	}, nil
}

// objectIDs converts the parseable hex ids and drops the rest.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
