package user

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/campushq/eventsync/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrTokenInvalid    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenRevoked    = errors.New("token revoked")
	ErrSubjectNotFound = errors.New("token subject not found")
)

// Principal is the authenticated identity resolved from a valid token,
// valid for the duration of one request.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RevokedToken is a deny-list entry: the exact token string invalidated
// before its natural expiry. ExpiresAt carries the token's own embedded
// expiry so stale entries can be purged.
type RevokedToken struct {
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	RevokedAt time.Time `db:"revoked_at"`
}

type RevocationRepository interface {
	// RevokeToken records a token on the deny-list. Idempotent: revoking
	// an already-revoked token is a no-op.
	RevokeToken(ctx context.Context, rt RevokedToken) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
	// PurgeExpiredTokens drops entries whose ExpiresAt precedes cutoff
	// and reports how many were removed.
	PurgeExpiredTokens(ctx context.Context, cutoff time.Time) (int, error)
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type (
	// TokenService issues, verifies and revokes session tokens.
	TokenService interface {
		Issue(ctx context.Context, usr User) (string, error)
		Verify(ctx context.Context, token string) (Principal, error)
		Revoke(ctx context.Context, token string) error
	}

	tokenService struct {
		conf    *core.Config
		repo    Repository
		revoked RevocationRepository
	}
)

var _ TokenService = (*tokenService)(nil)

func NewTokenService(conf *core.Config, repo Repository, revoked RevocationRepository) *tokenService {
	return &tokenService{
		conf:    conf,
		repo:    repo,
		revoked: revoked,
	}
}

// Issue returns a signed token for usr, valid from now until
// now + conf.Server.JWTExpirationDelta. No side effects.
func (svc *tokenService) Issue(_ context.Context, usr User) (string, error) {
	now := nowFunc()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    svc.conf.AppName,
			Subject:   usr.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(svc.conf.Server.JWTExpirationDelta).Unix(),
		},
		Email: usr.Email,
		Role:  usr.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(svc.conf.SecretKey))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

// Verify checks a token and resolves its Principal. Checks run strictly in
// order: revocation, signature/structure, expiry, subject resolution.
// It is a pure read; nothing is mutated.
func (svc *tokenService) Verify(ctx context.Context, token string) (Principal, error) {
	revoked, err := svc.revoked.IsTokenRevoked(ctx, token)
	if err != nil {
		return Principal{}, err
	}
	if revoked {
		return Principal{}, ErrTokenRevoked
	}

	claims, err := svc.parse(token)
	if err != nil {
		return Principal{}, err
	}

	if nowFunc().Unix() >= claims.ExpiresAt {
		return Principal{}, ErrTokenExpired
	}

	usr, err := svc.repo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if err == ErrNotFound {
			return Principal{}, ErrSubjectNotFound
		}
		return Principal{}, err
	}
	if !usr.IsActive {
		return Principal{}, ErrSubjectNotFound
	}

	// the Principal reflects the credential record, not the claims:
	// email/role changes apply on the next request, not the next login
	return Principal{ID: usr.ID, Email: usr.Email, Role: usr.Role}, nil
}

// Revoke records the literal token string on the deny-list. The token is
// never validated first: logout must succeed even for malformed or expired
// strings. Idempotent.
func (svc *tokenService) Revoke(ctx context.Context, token string) error {
	now := nowFunc()
	rt := RevokedToken{
		Token:     token,
		ExpiresAt: now.Add(svc.conf.Server.JWTExpirationDelta), // upper bound fallback
		RevokedAt: now,
	}
	// best effort: recover the embedded expiry so purging can evict this
	// entry as soon as the token would have died anyway
	claims := new(Claims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err == nil && claims.ExpiresAt > 0 {
		rt.ExpiresAt = time.Unix(claims.ExpiresAt, 0)
	}
	return svc.revoked.RevokeToken(ctx, rt)
}

// parse checks the token's structure and signature only; expiry is the
// caller's concern (ordering of checks matters for the error taxonomy).
func (svc *tokenService) parse(token string) (*Claims, error) {
	claims := new(Claims)
	parser := &jwt.Parser{SkipClaimsValidation: true}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(svc.conf.SecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" || claims.ExpiresAt == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// IsAuthError reports whether err belongs to the token verification error
// taxonomy. Transport layers collapse all of these to a single generic
// 401 so callers cannot tell which check failed.
func IsAuthError(err error) bool {
	switch err {
	case ErrTokenInvalid, ErrTokenExpired, ErrTokenRevoked, ErrSubjectNotFound:
		return true
	}
	return false
}
