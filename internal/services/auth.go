package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jyotishya/jyotishya-backend/internal/data/repos"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
)

// AuthService verifies Supabase access tokens. Supabase signs user JWTs with
// a shared HS256 secret; this service checks the signature, expiry, and the
// issuer/audience when SUPABASE_JWT_ISSUER / SUPABASE_JWT_AUDIENCE are set,
// then maps the subject onto a local user row. Signup, password reset and
// the rest of the credential lifecycle stay entirely with Supabase.
type AuthService interface {
	VerifyToken(tokenString string) (*TokenClaims, error)
	EnsureUser(ctx context.Context, claims *TokenClaims) (*types.User, error)
}

type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

type supabaseClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type authService struct {
	log        *logger.Logger
	secret     []byte
	parserOpts []jwt.ParserOption
	userRepo   repos.UserRepo
}

func NewAuthService(baseLog *logger.Logger, userRepo repos.UserRepo) (AuthService, error) {
	secret := strings.TrimSpace(os.Getenv("SUPABASE_JWT_SECRET"))
	if secret == "" {
		return nil, fmt.Errorf("missing SUPABASE_JWT_SECRET")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithLeeway(30 * time.Second),
	}
	// Issuer and audience pinning are optional: the Supabase issuer URL is
	// project-specific, so it comes from env rather than a constant.
	if issuer := strings.TrimSpace(os.Getenv("SUPABASE_JWT_ISSUER")); issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience := strings.TrimSpace(os.Getenv("SUPABASE_JWT_AUDIENCE")); audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	return &authService{
		log:        baseLog.With("service", "AuthService"),
		secret:     []byte(secret),
		parserOpts: opts,
		userRepo:   userRepo,
	}, nil
}

func (as *authService) VerifyToken(tokenString string) (*TokenClaims, error) {
	claims := &supabaseClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return as.secret, nil
	}, as.parserOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, pkgerrors.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: token has no subject", pkgerrors.ErrUnauthorized)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a uuid", pkgerrors.ErrUnauthorized)
	}

	return &TokenClaims{UserID: userID, Email: claims.Email}, nil
}

// EnsureUser materializes the local row for a verified subject: first
// request inserts it, later requests keep the email in sync.
func (as *authService) EnsureUser(ctx context.Context, claims *TokenClaims) (*types.User, error) {
	return as.userRepo.Upsert(ctx, nil, &types.User{
		ID:    claims.UserID,
		Email: claims.Email,
	})
}
