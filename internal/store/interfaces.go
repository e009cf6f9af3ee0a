// Package store implements the document store backing storefront-api.
// Documents of every resource collection live in a single PostgreSQL table
// as JSONB, keyed by (collection, id). The package exposes the generic
// [DocumentStore] contract consumed by the service layer and hides all SQL
// behind it.
package store

import (
	"context"

	"github.com/nvalera/storefront-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_store.go -package=mock

// Filter is an opaque predicate in the store's query dialect, supplied by
// the caller layer. It is structurally identical to squirrel.Sqlizer, so
// callers compose filters with squirrel expressions over the JSONB doc
// column (e.g. squirrel.Eq{"doc->>'email'": email}).
type Filter interface {
	ToSql() (string, []any, error)
}

// DocumentStore is the persistence contract consumed by the resource
// engine and the account subsystem. Implementations report well-known
// failure conditions through the sentinel errors in errors.go; callers
// match them with errors.Is.
type DocumentStore interface {
	// Insert persists a new document in the named collection, assigning
	// it a fresh identifier under models.FieldID, and returns the stored
	// document. A violated uniqueness constraint surfaces as
	// ErrDuplicateKey.
	Insert(ctx context.Context, collection string, doc models.Document) (models.Document, error)

	// FindByID returns the document with the given identifier, or
	// ErrDocumentNotFound. An identifier that matches nothing — including
	// a malformed one — is simply "no match".
	FindByID(ctx context.Context, collection, id string) (models.Document, error)

	// FindOne returns the first document matching the filter, or
	// ErrDocumentNotFound.
	FindOne(ctx context.Context, collection string, filter Filter) (models.Document, error)

	// MergeByID folds the partial document into the one stored under the
	// given identifier in a single statement and returns the resulting
	// document. Top-level fields present in partial replace the stored
	// values wholesale; nested objects are not merged recursively.
	// Returns ErrDocumentNotFound if the identifier matches nothing.
	MergeByID(ctx context.Context, collection, id string, partial models.Document) (models.Document, error)

	// DeleteByID removes the document with the given identifier.
	// Returns ErrDocumentNotFound when nothing was deleted.
	DeleteByID(ctx context.Context, collection, id string) error

	// Paginate returns one page of documents matching the filter (nil
	// filter matches everything) together with the total match count
	// across all pages. pageSize and pageNumber must already be
	// normalized by the caller.
	Paginate(ctx context.Context, collection string, filter Filter, pageSize, pageNumber int) (models.Page, error)
}
