package graph

import (
	"context"

	"github.com/botobag/artemis/concurrent/future"
	"github.com/botobag/artemis/dataloader"
	"github.com/botobag/artemis/graphql"

	"github.com/harentsoaR/clinic-api/internal/store"
)

// Loaders batches the doctor and patient lookups of a single request. A new
// Loaders must be created for every request.
type Loaders struct {
	graphql.DataLoaderManagerBase

	doctors  *dataloader.DataLoader
	patients *dataloader.DataLoader
}

var _ graphql.DataLoaderManager = (*Loaders)(nil)

func NewLoaders(doctors store.DoctorStore, patients store.PatientStore) (*Loaders, error) {
	doctorLoader, err := dataloader.New(dataloader.Config{
		BatchLoader: batchLoad(doctors.GetDoctors),
	})
	if err != nil {
		return nil, err
	}
	patientLoader, err := dataloader.New(dataloader.Config{
		BatchLoader: batchLoad(patients.GetPatients),
	})
	if err != nil {
		return nil, err
	}
	return &Loaders{doctors: doctorLoader, patients: patientLoader}, nil
}

// LoadDoctor resolves to the doctor with id, or to nil when it no longer exists.
func (l *Loaders) LoadDoctor(id string) (future.Future, error) {
	return l.LoadWith(l.doctors, id)
}

func (l *Loaders) LoadPatient(id string) (future.Future, error) {
	return l.LoadWith(l.patients, id)
}

// ForgetDoctor drops a cached doctor after a mutation changed it.
func (l *Loaders) ForgetDoctor(id string) {
	l.doctors.Clear(id)
}

func (l *Loaders) ForgetPatient(id string) {
	l.patients.Clear(id)
}

// batchLoad adapts a store batch getter to a dataloader. Ids the store does
// not return complete with nil.
func batchLoad[T any](get func(ctx context.Context, ids []string) (map[string]*T, error)) dataloader.BatchLoadFunc {
	return func(ctx context.Context, tasks *dataloader.TaskList) {
		var ids []string
		iter := tasks.Iterator()
		for {
			task, done := iter.Next()
			if done {
				break
			}
			ids = append(ids, task.Key().(string))
		}

		found, err := get(ctx, ids)

		iter = tasks.Iterator()
		for {
			task, done := iter.Next()
			if done {
				break
			}
			if err != nil {
				task.SetError(err)
				continue
			}
			if v, ok := found[task.Key().(string)]; ok {
				task.Complete(v)
			} else {
				task.Complete(nil)
			}
		}
	}
}

func loadersFrom(info graphql.ResolveInfo) *Loaders {
	return info.DataLoaderManager().(*Loaders)
}
