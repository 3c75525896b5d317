package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/trainingdiary/internal/telemetry/tracing"
)

// PsqlStore keeps documents as JSONB rows in the document table.
type PsqlStore struct {
	db       *pgxpool.Pool
	notifier Notifier
}

func NewPsqlStore(db *pgxpool.Pool, notifier Notifier) *PsqlStore {
	return &PsqlStore{
		db:       db,
		notifier: notifier,
	}
}

func (s *PsqlStore) Get(ctx context.Context, path string) (_ *Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.docstore.get")
	defer func() {
		if errors.Is(err, ErrNotFound) {
			tracing.EndSpanWithErrCheck(span, nil)
			return
		}
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("path", path))

	var doc Document
	var data []byte
	err = s.db.QueryRow(
		ctx,
		`SELECT path, data, created_at, updated_at FROM document WHERE path = $1;`,
		path,
	).Scan(&doc.Path, &data, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &ReadError{Path: path, Err: err}
	}

	doc.Data = data
	_, doc.ID, _ = SplitPath(doc.Path)
	return &doc, nil
}

func (s *PsqlStore) Set(ctx context.Context, path string, data any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.docstore.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("path", path))

	collection, _, err := SplitPath(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	raw, err := encode(path, data)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(
		ctx,
		`INSERT INTO document (path, collection, data)
				VALUES ($1, $2, $3)
			ON CONFLICT (path) DO UPDATE SET data = EXCLUDED.data, updated_at = now();`,
		path, collection, []byte(raw),
	); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	s.publish(ctx, Change{Path: path, Collection: collection, Op: OpSet})
	return nil
}

func (s *PsqlStore) CreateIfAbsent(ctx context.Context, path string, data any) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.docstore.createIfAbsent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("path", path))

	collection, _, err := SplitPath(path)
	if err != nil {
		return false, &WriteError{Path: path, Err: err}
	}
	raw, err := encode(path, data)
	if err != nil {
		return false, err
	}

	tag, err := s.db.Exec(
		ctx,
		`INSERT INTO document (path, collection, data)
				VALUES ($1, $2, $3)
			ON CONFLICT (path) DO NOTHING;`,
		path, collection, []byte(raw),
	)
	if err != nil {
		return false, &WriteError{Path: path, Err: err}
	}

	created := tag.RowsAffected() == 1
	span.SetAttributes(attribute.Bool("created", created))
	if created {
		s.publish(ctx, Change{Path: path, Collection: collection, Op: OpCreate})
	}

	return created, nil
}

func (s *PsqlStore) Create(ctx context.Context, collection string, data any) (_ *Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.docstore.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("collection", collection))

	id := uuid.NewString()
	path := DocumentPath(collection, id)
	raw, err := encode(path, data)
	if err != nil {
		return nil, err
	}

	doc := Document{
		Path: path,
		ID:   id,
		Data: raw,
	}
	if err := s.db.QueryRow(
		ctx,
		`INSERT INTO document (path, collection, data)
				VALUES ($1, $2, $3)
			RETURNING created_at, updated_at;`,
		path, collection, []byte(raw),
	).Scan(&doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}

	s.publish(ctx, Change{Path: path, Collection: collection, Op: OpCreate})
	return &doc, nil
}

func (s *PsqlStore) Delete(ctx context.Context, path string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.docstore.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("path", path))

	collection, _, err := SplitPath(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM document WHERE path = $1;`, path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if tag.RowsAffected() > 0 {
		s.publish(ctx, Change{Path: path, Collection: collection, Op: OpDelete})
	}
	return nil
}

func (s *PsqlStore) List(ctx context.Context, collection string) (_ []Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.docstore.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("collection", collection))

	rows, err := s.db.Query(
		ctx,
		`SELECT path, data, created_at, updated_at FROM document
			WHERE collection = $1
			ORDER BY created_at DESC, path DESC;`,
		collection,
	)
	if err != nil {
		return nil, &ReadError{Path: collection, Err: err}
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var doc Document
		var data []byte
		if err := rows.Scan(&doc.Path, &data, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, &ReadError{Path: collection, Err: fmt.Errorf("rows scan: %w", err)}
		}
		doc.Data = data
		_, doc.ID, _ = SplitPath(doc.Path)
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, &ReadError{Path: collection, Err: err}
	}

	span.SetAttributes(attribute.Int("count", len(docs)))
	return docs, nil
}

func (s *PsqlStore) publish(ctx context.Context, change Change) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, change); err != nil {
		log.Errorf("docstore: publish change %s: %s", change.Path, err)
	}
}
