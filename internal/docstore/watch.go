package docstore

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// DocumentSnapshot is a point in time view of one document.
// Doc is nil when the document does not exist.
type DocumentSnapshot struct {
	Doc *Document
	Err error
}

// CollectionSnapshot is a point in time view of a collection, newest first.
type CollectionSnapshot struct {
	Docs []Document
	Err  error
}

// Watcher turns store change notifications into snapshot streams.
type Watcher struct {
	store    Store
	notifier Notifier
}

func NewWatcher(store Store, notifier Notifier) *Watcher {
	return &Watcher{
		store:    store,
		notifier: notifier,
	}
}

// WatchDocument emits the current document, then a fresh snapshot after
// every change notification, until ctx is done. The channel is closed when
// the watch ends.
func (w *Watcher) WatchDocument(ctx context.Context, path string) (<-chan DocumentSnapshot, error) {
	sub, err := w.notifier.Subscribe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	out := make(chan DocumentSnapshot)
	go func() {
		defer close(out)
		defer closeSubscription(sub, path)

		read := func() DocumentSnapshot {
			doc, err := w.store.Get(ctx, path)
			if errors.Is(err, ErrNotFound) {
				return DocumentSnapshot{}
			}
			return DocumentSnapshot{Doc: doc, Err: err}
		}
		watchLoop(ctx, sub, out, read)
	}()

	return out, nil
}

// WatchCollection is WatchDocument for a whole collection.
func (w *Watcher) WatchCollection(ctx context.Context, collection string) (<-chan CollectionSnapshot, error) {
	sub, err := w.notifier.Subscribe(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", collection, err)
	}

	out := make(chan CollectionSnapshot)
	go func() {
		defer close(out)
		defer closeSubscription(sub, collection)

		read := func() CollectionSnapshot {
			docs, err := w.store.List(ctx, collection)
			return CollectionSnapshot{Docs: docs, Err: err}
		}
		watchLoop(ctx, sub, out, read)
	}()

	return out, nil
}

func watchLoop[S any](ctx context.Context, sub Subscription, out chan<- S, read func() S) {
	if !send(ctx, out, read()) {
		return
	}
	changes := sub.Changes()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			if ctx.Err() != nil {
				return
			}
			if !send(ctx, out, read()) {
				return
			}
		}
	}
}

func send[S any](ctx context.Context, out chan<- S, snapshot S) bool {
	select {
	case out <- snapshot:
		return true
	case <-ctx.Done():
		return false
	}
}

func closeSubscription(sub Subscription, topic string) {
	if err := sub.Close(); err != nil {
		log.Errorf("docstore: close subscription %s: %s", topic, err)
	}
}
