package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/nvalera/storefront-api/internal/config"
	"github.com/nvalera/storefront-api/internal/fault"
	"github.com/nvalera/storefront-api/internal/logger"
	"github.com/nvalera/storefront-api/internal/store"
	"github.com/nvalera/storefront-api/internal/utils"
	"github.com/nvalera/storefront-api/models"
)

// authService is the concrete implementation of [AuthService]. It handles
// account registration, credential verification, and JWT token lifecycle,
// delegating document persistence to the generic resource engine and
// natural-key lookups to the document store.
type authService struct {
	// documents is used for natural-key (email) lookups; document
	// creation goes through the resource engine so accounts receive the
	// same record envelope as every other resource.
	documents store.DocumentStore
	crud      CRUDService

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during
	// parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// bcryptCost is the work factor applied when hashing account secrets.
	bcryptCost int

	// decoyDigest is a throwaway bcrypt digest at the configured cost.
	// Login compares against it when no account matches the email, so an
	// unknown email costs as much as a wrong password.
	decoyDigest string

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given store and
// resource engine, populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(documents store.DocumentStore, crud CRUDService, cfg config.App, logger *logger.Logger) AuthService {
	decoyDigest, err := utils.HashPassword("storefront-decoy-secret", cfg.BcryptCost)
	if err != nil {
		logger.Err(err).Msg("decoy digest generation failed")
	}

	return &authService{
		documents:     documents,
		crud:          crud,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		bcryptCost:    cfg.BcryptCost,
		decoyDigest:   decoyDigest,
		logger:        logger,
	}
}

// emailFilter builds the store-dialect predicate matching an account
// document by its email natural key.
func emailFilter(email string) store.Filter {
	return squirrel.Eq{"doc->>'email'": email}
}

// Register creates a new account.
//
// The email uniqueness pre-check and the subsequent create are not atomic;
// two concurrent registrations can both pass the check. The store-level
// unique index on the accounts email key backstops that race, surfacing as
// a conflict from Create which is mapped to the same 409-emailAlreadyExists
// fault as the pre-check.
func (a *authService) Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if creds.Email == "" || creds.Password == "" {
		log.Error().Str("email", creds.Email).Msg("invalid credentials provided")
		return models.AuthResponse{}, fault.ErrBadRequest
	}

	if _, err := a.documents.FindOne(ctx, models.User{}.Collection(), emailFilter(creds.Email)); err == nil {
		log.Error().Str("email", creds.Email).Msg("email already registered")
		return models.AuthResponse{}, fault.ErrEmailAlreadyExists
	} else if !errors.Is(err, store.ErrDocumentNotFound) {
		log.Err(err).Str("email", creds.Email).Msg("email lookup failed")
		return models.AuthResponse{}, fmt.Errorf("%w: email lookup failed", fault.ErrInternal)
	}

	digest, err := utils.HashPassword(creds.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.AuthResponse{}, fmt.Errorf("%w: password hashing failed", fault.ErrInternal)
	}

	created, err := a.crud.Create(ctx, models.User{}, models.Document{
		"name":     creds.Name,
		"email":    creds.Email,
		"password": digest,
		"isAdmin":  false,
	})
	if err != nil {
		if errors.Is(err, fault.ErrConflict) {
			// Lost the check-then-create race; the unique index caught it.
			return models.AuthResponse{}, fault.ErrEmailAlreadyExists
		}
		log.Err(err).Str("email", creds.Email).Msg("account creation failed")
		return models.AuthResponse{}, err
	}

	token, err := a.CreateToken(ctx, models.Identity{SubjectID: created.ID(), IsAdmin: false})
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		User:  models.PublicDocument(created),
		Token: token.SignedString,
	}, nil
}

// Login authenticates an existing account.
//
// Lookup failure and digest mismatch are reported through distinct faults
// (404-user and 401-credentials). The unknown-email path still pays a full
// bcrypt comparison against the decoy digest, so the two failures cannot be
// told apart by response time.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if creds.Email == "" || creds.Password == "" {
		log.Error().Str("email", creds.Email).Msg("invalid credentials provided")
		return models.AuthResponse{}, fault.ErrBadRequest
	}

	doc, err := a.documents.FindOne(ctx, models.User{}.Collection(), emailFilter(creds.Email))
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			// Burn a comparison so this branch is not observably faster
			// than a wrong password.
			_ = utils.ComparePasswordAndHash(creds.Password, a.decoyDigest)
			return models.AuthResponse{}, fault.ErrUserNotFound
		}
		log.Err(err).Str("email", creds.Email).Msg("account lookup failed")
		return models.AuthResponse{}, fmt.Errorf("%w: account lookup failed", fault.ErrInternal)
	}

	user := models.UserFromDocument(doc)
	if err := utils.ComparePasswordAndHash(creds.Password, user.Password); err != nil {
		log.Error().Str("email", creds.Email).Msg("wrong password")
		return models.AuthResponse{}, fault.ErrInvalidCredentials
	}

	token, err := a.CreateToken(ctx, models.Identity{SubjectID: user.ID, IsAdmin: user.IsAdmin})
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		User:  models.PublicDocument(doc),
		Token: token.SignedString,
	}, nil
}

// CreateToken issues a signed JWT for the given identity.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after
// tokenDuration.
func (a *authService) CreateToken(ctx context.Context, identity models.Identity) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(a.tokenIssuer, identity, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("subject", identity.SubjectID).Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: token creation failed", fault.ErrInternal)
	}

	return token, nil
}

// ParseToken validates a raw JWT string and extracts the caller identity.
//
// Any validation failure (expired, wrong issuer, bad signature, malformed)
// is normalized to the 401-token fault so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Identity, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Identity{}, fault.ErrInvalidToken
	}

	return token.Identity, nil
}
