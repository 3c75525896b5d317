package profile

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/trainingdiary/internal/diary"
	"github.com/2beens/trainingdiary/internal/docstore"
	"github.com/2beens/trainingdiary/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=adapter_mocks_test.go -package=profile_test

type documentWatcher interface {
	WatchDocument(ctx context.Context, path string) (<-chan docstore.DocumentSnapshot, error)
}

// Snapshot is one emission of an observed profile. Err is set when the
// stored document could not be read or decoded.
type Snapshot struct {
	Profile *diary.UserProfile
	Err     error
}

// Adapter guarantees every user has exactly one profile document.
type Adapter struct {
	store   docstore.Store
	watcher documentWatcher
}

func NewAdapter(store docstore.Store, watcher documentWatcher) *Adapter {
	return &Adapter{
		store:   store,
		watcher: watcher,
	}
}

// ensure creates the default profile when the user has none. Concurrent
// callers race on a single create-if-absent write, only one of them wins.
func (a *Adapter) ensure(ctx context.Context, userID string) error {
	created, err := a.store.CreateIfAbsent(ctx, docstore.ProfilePath(userID), diary.DefaultProfile())
	if err != nil {
		return err
	}
	if created {
		log.Infof("default profile created for user %s", userID)
	}
	return nil
}

// Get is a one shot get-or-create read.
func (a *Adapter) Get(ctx context.Context, userID string) (_ *diary.UserProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	path := docstore.ProfilePath(userID)
	doc, err := a.store.Get(ctx, path)
	if errors.Is(err, docstore.ErrNotFound) {
		if err := a.ensure(ctx, userID); err != nil {
			return nil, err
		}
		doc, err = a.store.Get(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	return decodeProfile(doc)
}

// Observe creates the default profile if needed, then streams a snapshot
// for the current profile and every later change, in store order, until ctx
// is done.
func (a *Adapter) Observe(ctx context.Context, userID string) (<-chan Snapshot, error) {
	if err := a.ensure(ctx, userID); err != nil {
		return nil, err
	}

	docs, err := a.watcher.WatchDocument(ctx, docstore.ProfilePath(userID))
	if err != nil {
		return nil, fmt.Errorf("observe profile: %w", err)
	}

	out := make(chan Snapshot)
	go func() {
		defer close(out)
		for docSnapshot := range docs {
			var snapshot Snapshot
			switch {
			case docSnapshot.Err != nil:
				snapshot.Err = docSnapshot.Err
			case docSnapshot.Doc == nil:
				// deleted from outside, put the default back and wait for its snapshot
				if err := a.ensure(ctx, userID); err != nil {
					snapshot.Err = err
				} else {
					continue
				}
			default:
				snapshot.Profile, snapshot.Err = decodeProfile(docSnapshot.Doc)
			}

			select {
			case out <- snapshot:
			case <-ctx.Done():
				// keep draining so the watcher can stop
			}
		}
	}()

	return out, nil
}

// Save overwrites the whole profile, there is no concurrency check.
func (a *Adapter) Save(ctx context.Context, userID string, profile diary.UserProfile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	if err := profile.Validate(); err != nil {
		return err
	}

	path := docstore.ProfilePath(userID)
	if err := a.store.Set(ctx, path, profile); err != nil {
		var writeErr *docstore.WriteError
		if errors.As(err, &writeErr) {
			return err
		}
		return &docstore.WriteError{Path: path, Err: err}
	}

	return nil
}

func decodeProfile(doc *docstore.Document) (*diary.UserProfile, error) {
	var profile diary.UserProfile
	if err := doc.Decode(&profile); err != nil {
		return nil, &docstore.ReadError{Path: doc.Path, Err: fmt.Errorf("decode profile: %w", err)}
	}
	return &profile, nil
}
