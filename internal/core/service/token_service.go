package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

// TokenService issues and validates the signed access and refresh tokens.
// Tokens are stateless: validation is a pure function of the signing key and
// the claims, so any number of callers may validate concurrently. There is no
// revocation.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	users      ports.UserService
	log        zerolog.Logger
}

func NewTokenService(secret []byte, issuer string, accessTTL, refreshTTL time.Duration, users ports.UserService, log zerolog.Logger) *TokenService {
	if accessTTL == 0 {
		accessTTL = 5 * time.Minute
	}
	if refreshTTL == 0 {
		refreshTTL = 60 * time.Minute
	}
	return &TokenService{
		secret:     secret,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		users:      users,
		log:        log,
	}
}

// IssueAccess signs an access token for the principal. The subject is the
// principal's UUID and the scope carries the role names.
func (s *TokenService) IssueAccess(principal *domain.Principal) (string, error) {
	return s.sign(principal.UUID, ports.TokenTypeAccess, s.accessTTL, principal.Authorities)
}

// IssueRefresh signs a refresh token for the principal. Refresh tokens carry
// no scope: authorities are re-read from the directory at exchange time.
func (s *TokenService) IssueRefresh(principal *domain.Principal) (string, error) {
	return s.sign(principal.UUID, ports.TokenTypeRefresh, s.refreshTTL, nil)
}

// Validate decodes raw, verifies the signature and time-window claims, then
// asserts the type claim matches expectedType exactly. The type check is the
// guard that keeps a refresh token from standing in for an access token.
func (s *TokenService) Validate(raw, expectedType string) (*ports.Claims, error) {
	claims := &ports.Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, mapJWTError(err)
	}
	if !token.Valid {
		return nil, domain.ErrInvalidSignature
	}

	if claims.Type != expectedType {
		s.log.Warn().
			Str("subject", claims.Subject).
			Str("expected", expectedType).
			Str("found", claims.Type).
			Msg("token type mismatch")
		return nil, domain.ErrWrongTokenType
	}

	return claims, nil
}

// RefreshAccess exchanges a valid refresh token for a brand-new access token.
// The user is re-read by the token's subject UUID so the new token reflects
// live role and account state; a user deleted since issuance fails NotFound.
func (s *TokenService) RefreshAccess(ctx context.Context, rawRefresh string) (string, error) {
	claims, err := s.Validate(rawRefresh, ports.TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	principal, err := s.users.LoadByUUID(ctx, claims.Subject)
	if err != nil {
		return "", err
	}

	access, err := s.IssueAccess(principal)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("subject", principal.UUID).Msg("access token refreshed")
	return access, nil
}

func (s *TokenService) sign(subject, tokenType string, ttl time.Duration, scope []string) (string, error) {
	now := time.Now()
	claims := ports.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type:  tokenType,
		Scope: scope,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// mapJWTError translates the signing library's failures into the domain
// taxonomy so the boundary can treat them uniformly as "token invalid".
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return domain.ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrMalformedToken
	default:
		return fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
}
