// Package mongostore is the MongoDB backend of the clinic API.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
)

const (
	doctorsCollection      = "doctors"
	patientsCollection     = "patients"
	appointmentsCollection = "appointments"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	opts   store.Options
}

// Open connects to uri, verifies the connection and ensures the configured
// indexes on dbName.
func Open(ctx context.Context, uri, dbName string, opts store.Options) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	s := New(client.Database(dbName), opts)
	s.client = client
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// New wraps an already connected database. Close is then a no-op.
func New(db *mongo.Database, opts store.Options) *Store {
	return &Store{db: db, opts: opts}
}

// EnsureIndexes creates the unique email indexes enabled in the options.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := map[string]bool{
		doctorsCollection:  s.opts.UniqueDoctorEmail,
		patientsCollection: s.opts.UniquePatientEmail,
	}
	for coll, enabled := range unique {
		if !enabled {
			continue
		}
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		}
		if _, err := s.db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create %s email index: %w", coll, err)
		}
		log.Printf("EnsureIndexes: unique email index ready on %s", coll)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func writeError(entity string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return &models.DuplicateKeyError{Entity: entity, Field: "email"}
	}
	return err
}

var ascendingID = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

// findByID decodes the document with the given hex id into out. A malformed
// id is reported the same way as a missing one.
func (s *Store) findByID(ctx context.Context, coll, entity, id string, out interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &models.NotFoundError{Entity: entity}
	}
	err = s.db.Collection(coll).FindOne(ctx, bson.M{"_id": oid}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.NotFoundError{Entity: entity}
	}
	if err != nil {
		return fmt.Errorf("find %s: %w", coll, err)
	}
	return nil
}

func (s *Store) updateByID(ctx context.Context, coll, entity, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &models.NotFoundError{Entity: entity}
	}
	res, err := s.db.Collection(coll).UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return writeError(entity, err)
	}
	if res.MatchedCount == 0 {
		return &models.NotFoundError{Entity: entity}
	}
	return nil
}

func (s *Store) deleteByID(ctx context.Context, coll, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.db.Collection(coll).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", coll, err)
	}
	return res.DeletedCount > 0, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, ascendingID)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return docs, nil
}

// --- Doctors ---

func (s *Store) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	doc := doctorDoc{ID: primitive.NewObjectID(), Name: d.Name, Email: d.Email, Specialty: string(d.Specialty)}
	if _, err := s.db.Collection(doctorsCollection).InsertOne(ctx, doc); err != nil {
		return writeError(models.EntityDoctor, err)
	}
	d.ID = doc.ID.Hex()
	return nil
}

func (s *Store) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	var doc doctorDoc
	if err := s.findByID(ctx, doctorsCollection, models.EntityDoctor, id, &doc); err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (s *Store) GetDoctors(ctx context.Context, ids []string) (map[string]*models.Doctor, error) {
	docs, err := findAll[doctorDoc](ctx, s.db.Collection(doctorsCollection), bson.M{"_id": bson.M{"$in": objectIDs(ids)}})
	if err != nil {
		return nil, err
	}
	out := make(map[string]*models.Doctor, len(docs))
	for _, doc := range docs {
		out[doc.ID.Hex()] = doc.model()
	}
	return out, nil
}

func (s *Store) ListDoctors(ctx context.Context, filter models.DoctorFilter) ([]*models.Doctor, error) {
	query := bson.M{}
	if filter.Specialty != "" {
		query["specialty"] = string(filter.Specialty)
	}
	docs, err := findAll[doctorDoc](ctx, s.db.Collection(doctorsCollection), query)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Doctor, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.model())
	}
	return out, nil
}

func (s *Store) UpdateDoctor(ctx context.Context, d *models.Doctor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return s.updateByID(ctx, doctorsCollection, models.EntityDoctor, d.ID, bson.M{"$set": bson.M{
		"name":      d.Name,
		"email":     d.Email,
		"specialty": string(d.Specialty),
	}})
}

func (s *Store) DeleteDoctor(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, doctorsCollection, id)
}

// --- Patients ---

func (s *Store) CreatePatient(ctx context.Context, p *models.Patient) error {
	if err := p.Validate(); err != nil {
		return err
	}
	doc := patientDoc{ID: primitive.NewObjectID(), Name: p.Name, Email: p.Email, Age: p.Age}
	if _, err := s.db.Collection(patientsCollection).InsertOne(ctx, doc); err != nil {
		return writeError(models.EntityPatient, err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (s *Store) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	var doc patientDoc
	if err := s.findByID(ctx, patientsCollection, models.EntityPatient, id, &doc); err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (s *Store) GetPatients(ctx context.Context, ids []string) (map[string]*models.Patient, error) {
	docs, err := findAll[patientDoc](ctx, s.db.Collection(patientsCollection), bson.M{"_id": bson.M{"$in": objectIDs(ids)}})
	if err != nil {
		return nil, err
	}
	out := make(map[string]*models.Patient, len(docs))
	for _, doc := range docs {
		out[doc.ID.Hex()] = doc.model()
	}
	return out, nil
}

func (s *Store) ListPatients(ctx context.Context, filter models.PatientFilter) ([]*models.Patient, error) {
	query := bson.M{}
	age := bson.M{}
	if filter.MinAge != nil {
		age["$gte"] = *filter.MinAge
	}
	if filter.MaxAge != nil {
		age["$lte"] = *filter.MaxAge
	}
	if len(age) > 0 {
		query["age"] = age
	}
	docs, err := findAll[patientDoc](ctx, s.db.Collection(patientsCollection), query)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Patient, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.model())
	}
	return out, nil
}

func (s *Store) UpdatePatient(ctx context.Context, p *models.Patient) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.updateByID(ctx, patientsCollection, models.EntityPatient, p.ID, bson.M{"$set": bson.M{
		"name":  p.Name,
		"email": p.Email,
		"age":   p.Age,
	}})
}

func (s *Store) DeletePatient(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, patientsCollection, id)
}

// --- Appointments ---

func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	doc, err := newAppointmentDoc(a)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := s.db.Collection(appointmentsCollection).InsertOne(ctx, doc); err != nil {
		return writeError(models.EntityAppointment, err)
	}
	a.ID = doc.ID.Hex()
	return nil
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var doc appointmentDoc
	if err := s.findByID(ctx, appointmentsCollection, models.EntityAppointment, id, &doc); err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (s *Store) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]*models.Appointment, error) {
	query := bson.M{}
	if filter.DoctorID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.DoctorID)
		if err != nil {
			return []*models.Appointment{}, nil
		}
		query["doctor"] = oid
	}
	if filter.PatientID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.PatientID)
		if err != nil {
			return []*models.Appointment{}, nil
		}
		query["patient"] = oid
	}
	docs, err := findAll[appointmentDoc](ctx, s.db.Collection(appointmentsCollection), query)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Appointment, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.model())
	}
	return out, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, a *models.Appointment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	doc, err := newAppointmentDoc(a)
	if err != nil {
		return err
	}
	set := bson.M{"date": doc.Date, "doctor": doc.Doctor, "patient": doc.Patient}
	unset := bson.M{}
	optional := map[string]interface{}{"duration": a.Duration, "notes": a.Notes, "reason": a.Reason}
	for field, v := range optional {
		switch v := v.(type) {
		case *int:
			if v == nil {
				unset[field] = ""
			} else {
				set[field] = *v
			}
		case *string:
			if v == nil {
				unset[field] = ""
			} else {
				set[field] = *v
			}
		}
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return s.updateByID(ctx, appointmentsCollection, models.EntityAppointment, a.ID, update)
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, appointmentsCollection, id)
}
