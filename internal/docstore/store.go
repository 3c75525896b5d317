package docstore

import (
	"context"
	"encoding/json"
	"time"
)

// Document is a stored JSON document.
type Document struct {
	Path      string          `json:"path"`
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Decode unmarshals the document data into v.
func (d *Document) Decode(v any) error {
	return json.Unmarshal(d.Data, v)
}

// Store is a path keyed document store. Implementations publish a change
// notification after every successful write.
type Store interface {
	// Get returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, path string) (*Document, error)
	// Set creates or overwrites the document.
	Set(ctx context.Context, path string, data any) error
	// CreateIfAbsent writes data only when nothing exists at path, in a
	// single atomic write. It reports whether this call created it.
	CreateIfAbsent(ctx context.Context, path string, data any) (bool, error)
	// Create adds a document with a generated id to the collection.
	Create(ctx context.Context, collection string, data any) (*Document, error)
	// Delete removes the document, deleting a missing document is not an error.
	Delete(ctx context.Context, path string) error
	// List returns the collection documents, newest first.
	List(ctx context.Context, collection string) ([]Document, error)
}

func encode(path string, data any) (json.RawMessage, error) {
	if raw, ok := data.(json.RawMessage); ok {
		return append(json.RawMessage(nil), raw...), nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}
	return b, nil
}
