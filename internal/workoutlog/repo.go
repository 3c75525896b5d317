package workoutlog

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/trainingdiary/internal/diary"
	"github.com/2beens/trainingdiary/internal/docstore"
	"github.com/2beens/trainingdiary/internal/telemetry/tracing"
)

type collectionWatcher interface {
	WatchCollection(ctx context.Context, collection string) (<-chan docstore.CollectionSnapshot, error)
}

// Snapshot is the full workout log of a user, newest first.
type Snapshot struct {
	Entries []diary.WorkoutLogEntry
	Err     error
}

// Repo keeps one document per logged set under users/{uid}/workout_log.
type Repo struct {
	store   docstore.Store
	watcher collectionWatcher
}

func NewRepo(store docstore.Store, watcher collectionWatcher) *Repo {
	return &Repo{
		store:   store,
		watcher: watcher,
	}
}

// Add writes every entry as its own document and returns them with their ids.
// Entries written before a failure stay written.
func (r *Repo) Add(ctx context.Context, userID string, entries []diary.WorkoutLogEntry) (_ []diary.WorkoutLogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("entries", len(entries)),
	)

	collection := docstore.WorkoutLogCollection(userID)
	added := make([]diary.WorkoutLogEntry, 0, len(entries))
	for _, e := range entries {
		doc, err := r.store.Create(ctx, collection, e)
		if err != nil {
			return added, err
		}
		e.ID = doc.ID
		added = append(added, e)
	}

	return added, nil
}

func (r *Repo) List(ctx context.Context, userID string) (_ []diary.WorkoutLogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	docs, err := r.store.List(ctx, docstore.WorkoutLogCollection(userID))
	if err != nil {
		return nil, err
	}
	return docs2entries(docs)
}

// Watch streams the whole log after every change, until ctx is done.
func (r *Repo) Watch(ctx context.Context, userID string) (<-chan Snapshot, error) {
	docSnapshots, err := r.watcher.WatchCollection(ctx, docstore.WorkoutLogCollection(userID))
	if err != nil {
		return nil, err
	}

	out := make(chan Snapshot)
	go func() {
		defer close(out)
		for docSnapshot := range docSnapshots {
			snapshot := Snapshot{Err: docSnapshot.Err}
			if snapshot.Err == nil {
				snapshot.Entries, snapshot.Err = docs2entries(docSnapshot.Docs)
			}
			select {
			case out <- snapshot:
			case <-ctx.Done():
			}
		}
	}()

	return out, nil
}

func docs2entries(docs []docstore.Document) ([]diary.WorkoutLogEntry, error) {
	entries := make([]diary.WorkoutLogEntry, 0, len(docs))
	for i := range docs {
		var e diary.WorkoutLogEntry
		if err := docs[i].Decode(&e); err != nil {
			return nil, &docstore.ReadError{Path: docs[i].Path, Err: err}
		}
		e.ID = docs[i].ID
		if e.CreatedAt.IsZero() {
			e.CreatedAt = docs[i].CreatedAt
		}
		entries = append(entries, e)
	}
	return entries, nil
}
