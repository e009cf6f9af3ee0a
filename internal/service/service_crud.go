package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nvalera/storefront-api/internal/fault"
	"github.com/nvalera/storefront-api/internal/logger"
	"github.com/nvalera/storefront-api/internal/store"
	"github.com/nvalera/storefront-api/models"
)

// Default pagination parameters applied when the caller supplies
// non-positive values.
const (
	DefaultPageSize   = 10
	DefaultPageNumber = 1
)

// crudService is the concrete implementation of [CRUDService]. It is
// written once against the [models.Entity] descriptor contract and the
// [store.DocumentStore] interface; resource types supply only their
// collection name.
//
// Every method performs exactly one store call and fails fast: no
// retries, no locks, no cross-request state.
type crudService struct {
	store  store.DocumentStore
	logger *logger.Logger

	// now supplies record timestamps; overridable in tests.
	now func() time.Time
}

// NewCRUDService constructs the resource engine over the given document store.
func NewCRUDService(documents store.DocumentStore, logger *logger.Logger) CRUDService {
	return &crudService{
		store:  documents,
		logger: logger,
		now:    time.Now,
	}
}

// stamp returns the engine's canonical timestamp representation.
func (s *crudService) stamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

// sanitize strips the engine-managed fields from a caller payload so that
// identifiers and timestamps are never trusted from input.
func sanitize(payload models.Document) models.Document {
	doc := payload.Clone()
	if doc == nil {
		doc = models.Document{}
	}
	delete(doc, models.FieldID)
	delete(doc, models.FieldCreatedAt)
	delete(doc, models.FieldUpdatedAt)
	return doc
}

func (s *crudService) Create(ctx context.Context, entity models.Entity, payload models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	doc := sanitize(payload)
	now := s.stamp()
	doc[models.FieldCreatedAt] = now
	doc[models.FieldUpdatedAt] = now

	created, err := s.store.Insert(ctx, entity.Collection(), doc)
	if err != nil {
		log.Err(err).Str("collection", entity.Collection()).Msg("document creation failed")
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, fault.ErrConflict
		}
		return nil, fmt.Errorf("%w: document creation failed", fault.ErrInternal)
	}

	return created, nil
}

func (s *crudService) FindByID(ctx context.Context, entity models.Entity, id string) (models.Document, error) {
	log := logger.FromContext(ctx)

	doc, err := s.store.FindByID(ctx, entity.Collection(), id)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return nil, fault.ErrNotFound
		}
		log.Err(err).Str("collection", entity.Collection()).Str("id", id).Msg("document lookup failed")
		return nil, fmt.Errorf("%w: document lookup failed", fault.ErrInternal)
	}

	return doc, nil
}

func (s *crudService) Update(ctx context.Context, entity models.Entity, id string, partial models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	// The merge happens inside the store in one statement; the engine only
	// sanitizes the patch and re-stamps updatedAt. Reading the document
	// first and writing back a merged copy would let concurrent patches
	// overwrite each other.
	patch := sanitize(partial)
	patch[models.FieldUpdatedAt] = s.stamp()

	updated, err := s.store.MergeByID(ctx, entity.Collection(), id, patch)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return nil, fault.ErrNotFound
		}
		log.Err(err).Str("collection", entity.Collection()).Str("id", id).Msg("document update failed")
		return nil, fmt.Errorf("%w: document update failed", fault.ErrInternal)
	}

	return updated, nil
}

func (s *crudService) Delete(ctx context.Context, entity models.Entity, id string) error {
	log := logger.FromContext(ctx)

	if err := s.store.DeleteByID(ctx, entity.Collection(), id); err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return fault.ErrNotFound
		}
		log.Err(err).Str("collection", entity.Collection()).Str("id", id).Msg("document delete failed")
		return fmt.Errorf("%w: document delete failed", fault.ErrInternal)
	}

	return nil
}

func (s *crudService) Paginate(ctx context.Context, entity models.Entity, filter store.Filter, pageSize, pageNumber int) (models.Page, error) {
	log := logger.FromContext(ctx)

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageNumber <= 0 {
		pageNumber = DefaultPageNumber
	}

	page, err := s.store.Paginate(ctx, entity.Collection(), filter, pageSize, pageNumber)
	if err != nil {
		log.Err(err).Str("collection", entity.Collection()).Msg("document pagination failed")
		return models.Page{}, fmt.Errorf("%w: document pagination failed", fault.ErrInternal)
	}

	// Zero matches is a client-visible failure, not an empty success.
	// See the interface note on Paginate before changing this.
	if page.TotalCount == 0 {
		return models.Page{}, fault.ErrNoResults
	}

	return page, nil
}
