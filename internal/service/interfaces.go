// Package service contains the application core: the generic resource
// engine performing CRUD and paginated listing over any entity collection,
// and the account subsystem handling registration, login, and token
// lifecycle. Both report failure exclusively through [fault.Fault] signals;
// no raw store or codec error crosses the package boundary.
package service

import (
	"context"

	"github.com/nvalera/storefront-api/internal/store"
	"github.com/nvalera/storefront-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_service.go -package=mock

// CRUDService is the generic resource-access engine. Every operation is
// parameterized by a [models.Entity] descriptor, so the engine carries no
// per-resource logic. All failures are fault signals; store errors never
// leak past this interface.
type CRUDService interface {
	// Create stamps createdAt/updatedAt, persists the payload, and
	// returns the stored document. Caller-supplied values for _id,
	// createdAt, and updatedAt are discarded. Create does not enforce
	// natural-key uniqueness — that is the caller's responsibility,
	// checked before calling Create; a store-level constraint violation
	// still surfaces as a 409 conflict fault.
	Create(ctx context.Context, entity models.Entity, payload models.Document) (models.Document, error)

	// FindByID returns the document with the given identifier or a
	// 404 fault. Identifier format is not validated separately; a
	// malformed identifier is treated as "no match".
	FindByID(ctx context.Context, entity models.Entity, id string) (models.Document, error)

	// Update merges the fields present in partial onto the stored
	// document in a single store call, re-stamps updatedAt, and returns
	// the merged document. Top-level fields are replaced wholesale;
	// nested objects are not merged recursively. _id and createdAt are
	// immutable. Returns a 404 fault when the identifier does not
	// resolve.
	Update(ctx context.Context, entity models.Entity, id string, partial models.Document) (models.Document, error)

	// Delete hard-deletes the document. Deleting nothing is a 404 fault,
	// never a silent no-op; delete is deliberately not idempotent.
	Delete(ctx context.Context, entity models.Entity, id string) error

	// Paginate returns one page of documents matching the filter.
	// pageSize and pageNumber default to 10 and 1 when non-positive.
	//
	// NOTE: a valid query matching zero documents is reported as a
	// 404-results fault rather than an empty success page. This mirrors
	// the long-standing behavior of the public API and is covered by
	// tests; do not "fix" it without changing the API contract.
	Paginate(ctx context.Context, entity models.Entity, filter store.Filter, pageSize, pageNumber int) (models.Page, error)
}

// AuthService is the account and secret subsystem plus the credential
// verifier consumed by the authorization gate.
type AuthService interface {
	// Register checks email uniqueness, hashes the secret, creates the
	// account document, and issues a signed token. Duplicate emails fail
	// with a 409-emailAlreadyExists fault and perform no store write.
	Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// Login looks up the account by email (404-user when absent),
	// verifies the secret against the stored bcrypt digest
	// (401-credentials on mismatch), and issues a token identical in
	// shape to Register's.
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// CreateToken issues a signed JWT carrying the identity's subject
	// and admin claims, valid for the configured duration.
	CreateToken(ctx context.Context, identity models.Identity) (models.Token, error)

	// ParseToken verifies a raw token string and extracts the caller
	// identity. Any verification failure (bad signature, malformed,
	// expired) is normalized to a 401-token fault.
	ParseToken(ctx context.Context, tokenString string) (models.Identity, error)
}
