package docstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type memDocument struct {
	doc Document
	seq uint64
}

// MemStore keeps documents in memory. Used for tests and single node runs
// where persistence is not needed.
type MemStore struct {
	mu       sync.RWMutex
	docs     map[string]*memDocument
	seq      uint64
	notifier Notifier
	now      func() time.Time
}

func NewMemStore(notifier Notifier) *MemStore {
	return &MemStore{
		docs:     make(map[string]*memDocument),
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *MemStore) Get(_ context.Context, path string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.docs[path]
	if !ok {
		return nil, ErrNotFound
	}
	doc := copyDocument(d.doc)
	return &doc, nil
}

func (s *MemStore) Set(ctx context.Context, path string, data any) error {
	collection, id, err := SplitPath(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	raw, err := encode(path, data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	now := s.now().UTC()
	if d, ok := s.docs[path]; ok {
		d.doc.Data = raw
		d.doc.UpdatedAt = now
	} else {
		s.insert(path, collection, id, raw, now)
	}
	s.mu.Unlock()

	s.publish(ctx, Change{Path: path, Collection: collection, Op: OpSet})
	return nil
}

func (s *MemStore) CreateIfAbsent(ctx context.Context, path string, data any) (bool, error) {
	collection, id, err := SplitPath(path)
	if err != nil {
		return false, &WriteError{Path: path, Err: err}
	}
	raw, err := encode(path, data)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if _, ok := s.docs[path]; ok {
		s.mu.Unlock()
		return false, nil
	}
	s.insert(path, collection, id, raw, s.now().UTC())
	s.mu.Unlock()

	s.publish(ctx, Change{Path: path, Collection: collection, Op: OpCreate})
	return true, nil
}

func (s *MemStore) Create(ctx context.Context, collection string, data any) (*Document, error) {
	id := uuid.NewString()
	path := DocumentPath(collection, id)
	raw, err := encode(path, data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	d := s.insert(path, collection, id, raw, s.now().UTC())
	doc := copyDocument(d.doc)
	s.mu.Unlock()

	s.publish(ctx, Change{Path: path, Collection: collection, Op: OpCreate})
	return &doc, nil
}

func (s *MemStore) Delete(ctx context.Context, path string) error {
	collection, _, err := SplitPath(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	s.mu.Lock()
	_, existed := s.docs[path]
	delete(s.docs, path)
	s.mu.Unlock()

	if existed {
		s.publish(ctx, Change{Path: path, Collection: collection, Op: OpDelete})
	}
	return nil
}

func (s *MemStore) List(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	matched := make([]*memDocument, 0)
	for _, d := range s.docs {
		if d.doc.Path == DocumentPath(collection, d.doc.ID) {
			matched = append(matched, d)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.doc.CreatedAt.Equal(b.doc.CreatedAt) {
			return a.doc.CreatedAt.After(b.doc.CreatedAt)
		}
		return a.seq > b.seq
	})

	docs := make([]Document, 0, len(matched))
	for _, d := range matched {
		docs = append(docs, copyDocument(d.doc))
	}
	return docs, nil
}

// insert must be called with the write lock held.
func (s *MemStore) insert(path, collection, id string, raw []byte, now time.Time) *memDocument {
	s.seq++
	d := &memDocument{
		doc: Document{
			Path:      path,
			ID:        id,
			Data:      raw,
			CreatedAt: now,
			UpdatedAt: now,
		},
		seq: s.seq,
	}
	s.docs[path] = d
	return d
}

func (s *MemStore) publish(ctx context.Context, change Change) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, change); err != nil {
		log.Errorf("docstore: publish change %s: %s", change.Path, err)
	}
}

func copyDocument(d Document) Document {
	data := make([]byte, len(d.Data))
	copy(data, d.Data)
	d.Data = data
	return d
}
