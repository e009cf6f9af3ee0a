package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nvalera/storefront-api/internal/logger"
	"github.com/nvalera/storefront-api/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newTestRepo(t *testing.T, db *sql.DB) DocumentStore {
	t.Helper()
	return NewDocumentRepository(&DB{DB: db, logger: logger.Nop()}, logger.Nop())
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

// rawDoc serializes a document the way the repository stores it.
func rawDoc(t *testing.T, doc models.Document) []byte {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return raw
}

const (
	insertDocumentSQL = `INSERT INTO documents (collection,id,doc) VALUES ($1,$2,$3)`
	selectDocumentSQL = `SELECT doc FROM documents WHERE collection = $1 AND id = $2 LIMIT 1`
	mergeDocumentSQL  = `UPDATE documents SET doc = doc || $1 WHERE collection = $2 AND id = $3 RETURNING doc`
	deleteDocumentSQL = `DELETE FROM documents WHERE collection = $1 AND id = $2`
	countDocumentsSQL = `SELECT COUNT(*) FROM documents WHERE collection = $1`
)

func TestDocumentRepository_Insert(t *testing.T) {
	t.Run("assigns identifier and stores document", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).
			WithArgs("products", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		stored, err := repo.Insert(testContext(), "products", models.Document{"name": "lamp"})
		require.NoError(t, err)
		assert.NotEmpty(t, stored.ID())
		assert.Equal(t, "lamp", stored["name"])
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("does not mutate the caller's document", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).
			WithArgs("products", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		doc := models.Document{"name": "lamp"}
		_, err := repo.Insert(testContext(), "products", doc)
		require.NoError(t, err)
		assert.NotContains(t, doc, models.FieldID)
	})

	t.Run("unique violation maps to ErrDuplicateKey", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).
			WithArgs("users", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		_, err := repo.Insert(testContext(), "users", models.Document{"email": "a@b.c"})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("zero affected rows maps to ErrDocumentNotSaved", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).
			WithArgs("products", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.Insert(testContext(), "products", models.Document{"name": "lamp"})
		assert.ErrorIs(t, err, ErrDocumentNotSaved)
	})

	t.Run("other driver errors wrap ErrExecutingQuery", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(insertDocumentSQL)).
			WithArgs("products", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Insert(testContext(), "products", models.Document{"name": "lamp"})
		assert.ErrorIs(t, err, ErrExecutingQuery)
	})
}

func TestDocumentRepository_FindByID(t *testing.T) {
	t.Run("returns decoded document", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		want := models.Document{models.FieldID: "doc-1", "name": "lamp"}
		mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSQL)).
			WithArgs("products", "doc-1").
			WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(rawDoc(t, want)))

		got, err := repo.FindByID(testContext(), "products", "doc-1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("no rows maps to ErrDocumentNotFound", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSQL)).
			WithArgs("products", "missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(testContext(), "products", "missing")
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("undecodable row wraps ErrScanningRow", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSQL)).
			WithArgs("products", "doc-1").
			WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte("not json")))

		_, err := repo.FindByID(testContext(), "products", "doc-1")
		assert.ErrorIs(t, err, ErrScanningRow)
	})
}

func TestDocumentRepository_FindOne(t *testing.T) {
	t.Run("matches by caller-supplied predicate", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		want := models.Document{models.FieldID: "user-1", "email": "a@b.c"}
		query := `SELECT doc FROM documents WHERE collection = $1 AND doc->>'email' = $2 LIMIT 1`
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs("users", "a@b.c").
			WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(rawDoc(t, want)))

		got, err := repo.FindOne(testContext(), "users", squirrel.Eq{"doc->>'email'": "a@b.c"})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("no match maps to ErrDocumentNotFound", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery("SELECT doc FROM documents").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindOne(testContext(), "users", squirrel.Eq{"doc->>'email'": "nobody@b.c"})
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})
}

func TestDocumentRepository_MergeByID(t *testing.T) {
	patch := models.Document{"name": "new name", models.FieldUpdatedAt: "2026-03-14T15:09:26Z"}

	t.Run("merges the patch in one statement and returns the result", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		merged := models.Document{
			models.FieldID:        "doc-1",
			models.FieldUpdatedAt: "2026-03-14T15:09:26Z",
			"name":                "new name",
			"stock":               float64(5),
		}
		mock.ExpectQuery(regexp.QuoteMeta(mergeDocumentSQL)).
			WithArgs(rawDoc(t, patch), "products", "doc-1").
			WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(rawDoc(t, merged)))

		got, err := repo.MergeByID(testContext(), "products", "doc-1", patch)
		require.NoError(t, err)
		assert.Equal(t, merged, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matching row maps to ErrDocumentNotFound", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(mergeDocumentSQL)).
			WithArgs(rawDoc(t, patch), "products", "missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.MergeByID(testContext(), "products", "missing", patch)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("undecodable row wraps ErrScanningRow", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(mergeDocumentSQL)).
			WithArgs(rawDoc(t, patch), "products", "doc-1").
			WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte("not json")))

		_, err := repo.MergeByID(testContext(), "products", "doc-1", patch)
		assert.ErrorIs(t, err, ErrScanningRow)
	})
}

func TestDocumentRepository_DeleteByID(t *testing.T) {
	t.Run("deletes stored document", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(deleteDocumentSQL)).
			WithArgs("products", "doc-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteByID(testContext(), "products", "doc-1")
		require.NoError(t, err)
	})

	t.Run("deleting nothing maps to ErrDocumentNotFound", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(deleteDocumentSQL)).
			WithArgs("products", "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteByID(testContext(), "products", "missing")
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})
}

func TestDocumentRepository_Paginate(t *testing.T) {
	t.Run("returns requested page with count math", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(countDocumentsSQL)).
			WithArgs("products").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

		pageSQL := `SELECT doc FROM documents WHERE collection = $1 ORDER BY doc->>'createdAt' LIMIT 10 OFFSET 10`
		mock.ExpectQuery(regexp.QuoteMeta(pageSQL)).
			WithArgs("products").
			WillReturnRows(sqlmock.NewRows([]string{"doc"}).
				AddRow(rawDoc(t, models.Document{models.FieldID: "doc-11"})).
				AddRow(rawDoc(t, models.Document{models.FieldID: "doc-12"})))

		page, err := repo.Paginate(testContext(), "products", nil, 10, 2)
		require.NoError(t, err)

		assert.Equal(t, 21, page.TotalCount)
		assert.Equal(t, 3, page.PageCount)
		assert.Equal(t, 2, page.PageNumber)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "doc-11", page.Items[0].ID())
	})

	t.Run("zero total skips the page query", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(countDocumentsSQL)).
			WithArgs("products").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		page, err := repo.Paginate(testContext(), "products", nil, 10, 1)
		require.NoError(t, err)

		assert.Zero(t, page.TotalCount)
		assert.Zero(t, page.PageCount)
		assert.Empty(t, page.Items)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filter narrows both queries", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		countSQL := `SELECT COUNT(*) FROM documents WHERE collection = $1 AND (doc->>'stock')::numeric > $2`
		mock.ExpectQuery(regexp.QuoteMeta(countSQL)).
			WithArgs("products", 0).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		pageSQL := `SELECT doc FROM documents WHERE collection = $1 AND (doc->>'stock')::numeric > $2 ORDER BY doc->>'createdAt' LIMIT 10 OFFSET 0`
		mock.ExpectQuery(regexp.QuoteMeta(pageSQL)).
			WithArgs("products", 0).
			WillReturnRows(sqlmock.NewRows([]string{"doc"}).
				AddRow(rawDoc(t, models.Document{models.FieldID: "doc-1", "stock": 3})))

		inStock := squirrel.Expr("(doc->>'stock')::numeric > ?", 0)
		page, err := repo.Paginate(testContext(), "products", inStock, 10, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, page.TotalCount)
	})
}
