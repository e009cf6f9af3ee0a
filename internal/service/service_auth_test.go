package service

import (
	"errors"
	"testing"
	"time"

	"github.com/nvalera/storefront-api/internal/config"
	"github.com/nvalera/storefront-api/internal/fault"
	"github.com/nvalera/storefront-api/internal/logger"
	"github.com/nvalera/storefront-api/internal/mock"
	"github.com/nvalera/storefront-api/internal/store"
	"github.com/nvalera/storefront-api/internal/utils"
	"github.com/nvalera/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "storefront-api",
		TokenDuration: time.Hour,
		// MinCost keeps the hashing paths fast in tests.
		BcryptCost: bcrypt.MinCost,
	}
}

func newTestAuth(t *testing.T) (AuthService, *mock.MockDocumentStore, *mock.MockCRUDService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	documents := mock.NewMockDocumentStore(ctrl)
	crud := mock.NewMockCRUDService(ctrl)

	auth := NewAuthService(documents, crud, testAppConfig(), logger.Nop())
	return auth, documents, crud
}

func TestAuthService_Register(t *testing.T) {
	creds := models.Credentials{Name: "Nora", Email: "nora@example.com", Password: "s3cret"}

	t.Run("creates account and issues token", func(t *testing.T) {
		auth, documents, crud := newTestAuth(t)
		ctx := testContext()

		documents.EXPECT().
			FindOne(ctx, "users", emailFilter(creds.Email)).
			Return(nil, store.ErrDocumentNotFound)

		crud.EXPECT().
			Create(ctx, models.User{}, gomock.Any()).
			DoAndReturn(func(_ any, _ models.Entity, payload models.Document) (models.Document, error) {
				assert.Equal(t, creds.Name, payload["name"])
				assert.Equal(t, creds.Email, payload["email"])
				assert.Equal(t, false, payload["isAdmin"])

				digest, _ := payload["password"].(string)
				require.NotEqual(t, creds.Password, digest, "raw secret must never be stored")
				require.NoError(t, utils.ComparePasswordAndHash(creds.Password, digest))

				stored := payload.Clone()
				stored[models.FieldID] = "user-1"
				return stored, nil
			})

		response, err := auth.Register(ctx, creds)
		require.NoError(t, err)

		assert.Equal(t, "user-1", response.User.ID())
		assert.NotContains(t, response.User, "password", "digest must not leak into the response")

		identity, err := auth.ParseToken(ctx, response.Token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.SubjectID)
		assert.False(t, identity.IsAdmin, "fresh accounts are never admins")
	})

	t.Run("empty credentials are a bad request", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)
		ctx := testContext()

		_, err := auth.Register(ctx, models.Credentials{Email: "nora@example.com"})
		assert.ErrorIs(t, err, fault.ErrBadRequest)

		_, err = auth.Register(ctx, models.Credentials{Password: "s3cret"})
		assert.ErrorIs(t, err, fault.ErrBadRequest)
	})

	t.Run("registered email fails without a store write", func(t *testing.T) {
		auth, documents, _ := newTestAuth(t)
		ctx := testContext()

		documents.EXPECT().
			FindOne(ctx, "users", emailFilter(creds.Email)).
			Return(models.Document{models.FieldID: "user-1", "email": creds.Email}, nil)

		_, err := auth.Register(ctx, creds)
		assert.ErrorIs(t, err, fault.ErrEmailAlreadyExists)
	})

	t.Run("lost uniqueness race still reports the email conflict", func(t *testing.T) {
		auth, documents, crud := newTestAuth(t)
		ctx := testContext()

		documents.EXPECT().
			FindOne(ctx, "users", emailFilter(creds.Email)).
			Return(nil, store.ErrDocumentNotFound)
		crud.EXPECT().
			Create(ctx, models.User{}, gomock.Any()).
			Return(nil, fault.ErrConflict)

		_, err := auth.Register(ctx, creds)
		assert.ErrorIs(t, err, fault.ErrEmailAlreadyExists)
	})

	t.Run("lookup failure maps to internal fault", func(t *testing.T) {
		auth, documents, _ := newTestAuth(t)
		ctx := testContext()

		documents.EXPECT().
			FindOne(ctx, "users", emailFilter(creds.Email)).
			Return(nil, errors.New("connection reset"))

		_, err := auth.Register(ctx, creds)
		assert.ErrorIs(t, err, fault.ErrInternal)
	})
}

func TestAuthService_Login(t *testing.T) {
	const password = "s3cret"
	creds := models.Credentials{Email: "nora@example.com", Password: password}

	storedUser := func(t *testing.T, isAdmin bool) models.Document {
		t.Helper()
		digest, err := utils.HashPassword(password, bcrypt.MinCost)
		require.NoError(t, err)
		return models.Document{
			models.FieldID: "user-1",
			"name":         "Nora",
			"email":        creds.Email,
			"password":     digest,
			"isAdmin":      isAdmin,
		}
	}

	t.Run("verifies secret and issues token", func(t *testing.T) {
		auth, documents, _ := newTestAuth(t)
		ctx := testContext()

		documents.EXPECT().
			FindOne(ctx, "users", emailFilter(creds.Email)).
			Return(storedUser(t, true), nil)

		response, err := auth.Login(ctx, creds)
		require.NoError(t, err)

		assert.Equal(t, "user-1", response.User.ID())
		assert.NotContains(t, response.User, "password")

		identity, err := auth.ParseToken(ctx, response.Token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.SubjectID)
		assert.True(t, identity.IsAdmin, "admin claim mirrors the stored flag")
	})

	t.Run("unknown email is a user-not-found fault", func(t *testing.T) {
		auth, documents, _ := newTestAuth(t)
		ctx := testContext()

		documents.EXPECT().
			FindOne(ctx, "users", emailFilter(creds.Email)).
			Return(nil, store.ErrDocumentNotFound)

		_, err := auth.Login(ctx, creds)
		assert.ErrorIs(t, err, fault.ErrUserNotFound)
	})

	t.Run("unknown email still pays a digest comparison", func(t *testing.T) {
		auth, documents, _ := newTestAuth(t)
		ctx := testContext()

		svc := auth.(*authService)
		cost, err := bcrypt.Cost([]byte(svc.decoyDigest))
		require.NoError(t, err, "the decoy is a real bcrypt digest, so the comparison does full work")
		assert.Equal(t, bcrypt.MinCost, cost, "decoy cost tracks the configured hashing cost")

		documents.EXPECT().
			FindOne(ctx, "users", emailFilter(creds.Email)).
			Return(nil, store.ErrDocumentNotFound)

		_, err = auth.Login(ctx, creds)
		assert.ErrorIs(t, err, fault.ErrUserNotFound, "the decoy comparison never turns into a success")
	})

	t.Run("wrong secret is a credentials fault", func(t *testing.T) {
		auth, documents, _ := newTestAuth(t)
		ctx := testContext()

		documents.EXPECT().
			FindOne(ctx, "users", emailFilter(creds.Email)).
			Return(storedUser(t, false), nil)

		_, err := auth.Login(ctx, models.Credentials{Email: creds.Email, Password: "wrong"})
		assert.ErrorIs(t, err, fault.ErrInvalidCredentials)
	})

	t.Run("empty credentials are a bad request", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)
		ctx := testContext()

		_, err := auth.Login(ctx, models.Credentials{})
		assert.ErrorIs(t, err, fault.ErrBadRequest)
	})
}

func TestAuthService_Tokens(t *testing.T) {
	identity := models.Identity{SubjectID: "user-1", IsAdmin: true}

	t.Run("round trip preserves identity", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)
		ctx := testContext()

		token, err := auth.CreateToken(ctx, identity)
		require.NoError(t, err)
		require.NotEmpty(t, token.SignedString)

		parsed, err := auth.ParseToken(ctx, token.SignedString)
		require.NoError(t, err)
		assert.Equal(t, identity, parsed)
	})

	t.Run("foreign signature is an invalid-token fault", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)
		ctx := testContext()

		foreign, err := utils.GenerateJWTToken("storefront-api", identity, time.Hour, "other-sign-key")
		require.NoError(t, err)

		_, err = auth.ParseToken(ctx, foreign.SignedString)
		assert.ErrorIs(t, err, fault.ErrInvalidToken)
	})

	t.Run("foreign issuer is an invalid-token fault", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)
		ctx := testContext()

		foreign, err := utils.GenerateJWTToken("another-service", identity, time.Hour, "test-sign-key")
		require.NoError(t, err)

		_, err = auth.ParseToken(ctx, foreign.SignedString)
		assert.ErrorIs(t, err, fault.ErrInvalidToken)
	})

	t.Run("expired token is an invalid-token fault", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)
		ctx := testContext()

		expired, err := utils.GenerateJWTToken("storefront-api", identity, -time.Minute, "test-sign-key")
		require.NoError(t, err)

		_, err = auth.ParseToken(ctx, expired.SignedString)
		assert.ErrorIs(t, err, fault.ErrInvalidToken)
	})

	t.Run("garbage token string is an invalid-token fault", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)
		ctx := testContext()

		_, err := auth.ParseToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, fault.ErrInvalidToken)
	})
}
