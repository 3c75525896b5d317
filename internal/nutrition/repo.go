package nutrition

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/trainingdiary/internal/diary"
	"github.com/2beens/trainingdiary/internal/docstore"
	"github.com/2beens/trainingdiary/internal/telemetry/tracing"
)

type collectionWatcher interface {
	WatchCollection(ctx context.Context, collection string) (<-chan docstore.CollectionSnapshot, error)
}

// Snapshot is the full nutrition log of a user, newest first.
type Snapshot struct {
	Entries []diary.NutritionLogEntry
	Err     error
}

// Repo keeps one document per food entry under users/{uid}/nutrition_log.
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

func (r *Repo) Add(ctx context.Context, userID string, entry diary.NutritionLogEntry) (_ *diary.NutritionLogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	doc, err := r.store.Create(ctx, docstore.NutritionLogCollection(userID), entry)
	if err != nil {
		return nil, err
	}
	entry.ID = doc.ID
	return &entry, nil
}

// Delete removes one entry. Deleting a missing entry is not an error.
func (r *Repo) Delete(ctx context.Context, userID, entryID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("entry.id", entryID),
	)

	if entryID == "" || strings.Contains(entryID, "/") {
		return diary.NewValidationError("id", "invalid entry id")
	}
	return r.store.Delete(ctx, docstore.DocumentPath(docstore.NutritionLogCollection(userID), entryID))
}

func (r *Repo) List(ctx context.Context, userID string) (_ []diary.NutritionLogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	docs, err := r.store.List(ctx, docstore.NutritionLogCollection(userID))
	if err != nil {
		return nil, err
	}
	return docs2entries(docs)
}

// Watch streams the whole log after every change, until ctx is done.
func (r *Repo) Watch(ctx context.Context, userID string) (<-chan Snapshot, error) {
	docSnapshots, err := r.watcher.WatchCollection(ctx, docstore.NutritionLogCollection(userID))
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

func docs2entries(docs []docstore.Document) ([]diary.NutritionLogEntry, error) {
	entries := make([]diary.NutritionLogEntry, 0, len(docs))
	for i := range docs {
		var e diary.NutritionLogEntry
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
