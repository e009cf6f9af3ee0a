package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/nvalera/storefront-api/internal/logger"
	"github.com/nvalera/storefront-api/models"
)

// psql builds all store queries with PostgreSQL-style $N placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const documentsTable = "documents"

// documentRepository is the PostgreSQL-backed implementation of
// [DocumentStore]. Each document is stored as a JSONB value in the
// documents table, keyed by (collection, id).
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type documentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDocumentRepository constructs a [DocumentStore] backed by the provided
// database connection and logger.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentStore {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		db:     db,
		logger: logger,
	}
}

// Insert persists doc in the named collection under a freshly generated
// identifier and returns the canonical stored document.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrDuplicateKey].
//   - Zero affected rows → [ErrDocumentNotSaved].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *documentRepository) Insert(ctx context.Context, collection string, doc models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	stored := doc.Clone()
	stored[models.FieldID] = uuid.NewString()

	raw, err := json.Marshal(stored)
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error marshaling document")
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	query, args, err := psql.Insert(documentsTable).
		Columns("collection", "id", "doc").
		Values(collection, stored.ID(), raw).
		ToSql()
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error building insert query")
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error inserting document")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return nil, ErrDuplicateKey
		default:
			return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
		}
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrDocumentNotSaved
	}

	return stored, nil
}

// FindByID retrieves the document stored under (collection, id).
//
// Error handling:
//   - No matching row → [ErrDocumentNotFound].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
//   - Scan or decode failure → wrapped [ErrScanningRow].
func (r *documentRepository) FindByID(ctx context.Context, collection, id string) (models.Document, error) {
	return r.findOne(ctx, collection, squirrel.Eq{"id": id})
}

// FindOne retrieves the first document in the collection matching the
// caller-supplied filter predicate. Error handling matches [FindByID].
func (r *documentRepository) FindOne(ctx context.Context, collection string, filter Filter) (models.Document, error) {
	return r.findOne(ctx, collection, filter)
}

func (r *documentRepository) findOne(ctx context.Context, collection string, filter Filter) (models.Document, error) {
	log := logger.FromContext(ctx)

	builder := psql.Select("doc").
		From(documentsTable).
		Where(squirrel.Eq{"collection": collection})
	if filter != nil {
		builder = builder.Where(filter)
	}

	query, args, err := builder.Limit(1).ToSql()
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error building select query")
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		log.Err(err).Str("collection", collection).Msg("error querying document")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Err(err).Str("collection", collection).Msg("error decoding document")
		return nil, fmt.Errorf("%w: %v", ErrScanningRow, err)
	}

	return doc, nil
}

// MergeByID folds partial into the JSONB value stored under
// (collection, id) using a single JSONB concatenation statement, so
// concurrent partial updates never overwrite each other's fields. The
// merged document is read back through RETURNING.
//
// Error handling:
//   - No matching row → [ErrDocumentNotFound].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
//   - Scan or decode failure → wrapped [ErrScanningRow].
func (r *documentRepository) MergeByID(ctx context.Context, collection, id string, partial models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(partial)
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error marshaling document")
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	query, args, err := psql.Update(documentsTable).
		Set("doc", squirrel.Expr("doc || ?", raw)).
		Where(squirrel.Eq{"collection": collection, "id": id}).
		Suffix("RETURNING doc").
		ToSql()
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error building update query")
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var merged []byte
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&merged); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		log.Err(err).Str("collection", collection).Str("id", id).Msg("error updating document")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	var doc models.Document
	if err := json.Unmarshal(merged, &doc); err != nil {
		log.Err(err).Str("collection", collection).Msg("error decoding document")
		return nil, fmt.Errorf("%w: %v", ErrScanningRow, err)
	}

	return doc, nil
}

// DeleteByID hard-deletes the document stored under (collection, id).
// Deleting nothing is reported as [ErrDocumentNotFound], never as a
// silent no-op.
func (r *documentRepository) DeleteByID(ctx context.Context, collection, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.Delete(documentsTable).
		Where(squirrel.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error building delete query")
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("collection", collection).Str("id", id).Msg("error deleting document")
		return fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

// Paginate returns the requested page of matching documents ordered by
// creation time, together with the total match count. A zero TotalCount
// is a valid store result; translating it into a client-visible failure
// is the resource engine's decision, not the store's.
func (r *documentRepository) Paginate(ctx context.Context, collection string, filter Filter, pageSize, pageNumber int) (models.Page, error) {
	log := logger.FromContext(ctx)

	countBuilder := psql.Select("COUNT(*)").
		From(documentsTable).
		Where(squirrel.Eq{"collection": collection})
	if filter != nil {
		countBuilder = countBuilder.Where(filter)
	}

	query, args, err := countBuilder.ToSql()
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error building count query")
		return models.Page{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).Str("collection", collection).Msg("error counting documents")
		return models.Page{}, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	page := models.Page{
		Items:      []models.Document{},
		TotalCount: total,
		PageCount:  (total + pageSize - 1) / pageSize,
		PageNumber: pageNumber,
	}
	if total == 0 {
		return page, nil
	}

	itemsBuilder := psql.Select("doc").
		From(documentsTable).
		Where(squirrel.Eq{"collection": collection})
	if filter != nil {
		itemsBuilder = itemsBuilder.Where(filter)
	}

	query, args, err = itemsBuilder.
		OrderBy("doc->>'createdAt'").
		Limit(uint64(pageSize)).
		Offset(uint64((pageNumber - 1) * pageSize)).
		ToSql()
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error building page query")
		return models.Page{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error querying page")
		return models.Page{}, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			log.Err(err).Str("collection", collection).Msg("error scanning page row")
			return models.Page{}, fmt.Errorf("%w: %v", ErrScanningRow, err)
		}

		var doc models.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			log.Err(err).Str("collection", collection).Msg("error decoding page row")
			return models.Page{}, fmt.Errorf("%w: %v", ErrScanningRow, err)
		}

		page.Items = append(page.Items, doc)
	}
	if err := rows.Err(); err != nil {
		return models.Page{}, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	return page, nil
}
