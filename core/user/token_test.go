package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/campushq/eventsync/core"
)

type memUserRepo struct {
	Repository
	users map[string]User
}

func (r *memUserRepo) GetUserByID(_ context.Context, id string) (User, error) {
	if usr, ok := r.users[id]; ok {
		return usr, nil
	}
	return User{}, ErrNotFound
}

type memRevocationRepo struct {
	mutex  sync.RWMutex
	tokens map[string]RevokedToken
}

func newMemRevocationRepo() *memRevocationRepo {
	return &memRevocationRepo{tokens: make(map[string]RevokedToken)}
}

func (r *memRevocationRepo) RevokeToken(_ context.Context, rt RevokedToken) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.tokens[rt.Token]; !ok {
		r.tokens[rt.Token] = rt
	}
	return nil
}

func (r *memRevocationRepo) IsTokenRevoked(_ context.Context, token string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, ok := r.tokens[token]
	return ok, nil
}

func (r *memRevocationRepo) PurgeExpiredTokens(_ context.Context, cutoff time.Time) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	var n int
	for tok, rt := range r.tokens {
		if rt.ExpiresAt.Before(cutoff) {
			delete(r.tokens, tok)
			n++
		}
	}
	return n, nil
}

func testConfig() *core.Config {
	conf := &core.Config{
		AppName:   "EventSync",
		SecretKey: "test-secret",
	}
	conf.Server.JWTExpirationDelta = 24 * time.Hour
	return conf
}

func TestTokenService_IssueVerify(t *testing.T) {
	ctx := context.Background()
	conf := testConfig()

	now := time.Now()
	usr := User{ID: "u-1", Name: "T", Email: "t@test.cd", Role: RoleUser, IsActive: true, CreatedAt: now, UpdatedAt: now}
	ghost := User{ID: "u-2", Name: "G", Email: "g@test.cd", Role: RoleUser, IsActive: true}
	naughty := User{ID: "u-3", Name: "N", Email: "n@test.cd", Role: RoleUser, IsActive: false}

	repo := &memUserRepo{users: map[string]User{usr.ID: usr, naughty.ID: naughty}}
	revoked := newMemRevocationRepo()
	svc := NewTokenService(conf, repo, revoked)

	validToken, err := svc.Issue(ctx, usr)
	if err != nil {
		t.Fatalf("Issue(): %v", err)
	}

	// a token whose subject no longer resolves
	ghostToken, err := svc.Issue(ctx, ghost)
	if err != nil {
		t.Fatalf("Issue(): %v", err)
	}

	// a token for a deactivated account
	naughtyToken, err := svc.Issue(ctx, naughty)
	if err != nil {
		t.Fatalf("Issue(): %v", err)
	}

	// a token signed with another secret
	otherConf := testConfig()
	otherConf.SecretKey = "other-secret"
	forgedToken, err := NewTokenService(otherConf, repo, revoked).Issue(ctx, usr)
	if err != nil {
		t.Fatalf("Issue(): %v", err)
	}

	// an expired token
	nowFunc = func() time.Time { return time.Now().Add(-(conf.Server.JWTExpirationDelta + time.Hour)) }
	expiredToken, err := svc.Issue(ctx, usr)
	nowFunc = time.Now // reset
	if err != nil {
		t.Fatalf("Issue(): %v", err)
	}

	// a revoked but otherwise valid token
	revokedToken, err := svc.Issue(ctx, usr)
	if err != nil {
		t.Fatalf("Issue(): %v", err)
	}
	if err = svc.Revoke(ctx, revokedToken); err != nil {
		t.Fatalf("Revoke(): %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "no token", wantErr: ErrTokenInvalid},
		{name: "garbage", token: "lmaooolol", wantErr: ErrTokenInvalid},
		{name: "forged signature", token: forgedToken, wantErr: ErrTokenInvalid},
		{name: "expired", token: expiredToken, wantErr: ErrTokenExpired},
		{name: "revoked", token: revokedToken, wantErr: ErrTokenRevoked},
		{name: "unknown subject", token: ghostToken, wantErr: ErrSubjectNotFound},
		{name: "deactivated subject", token: naughtyToken, wantErr: ErrSubjectNotFound},
		{name: "valid", token: validToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := svc.Verify(ctx, tt.token)
			if err != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if principal.ID != usr.ID || principal.Email != usr.Email || principal.Role != usr.Role {
					t.Errorf("Verify() principal = %+v, want %v/%v/%v", principal, usr.ID, usr.Email, usr.Role)
				}
			}
		})
	}
}

func TestTokenService_VerifyAfterRevoke(t *testing.T) {
	ctx := context.Background()
	conf := testConfig()

	usr := User{ID: "u-1", Email: "t@test.cd", Role: RoleUser, IsActive: true}
	repo := &memUserRepo{users: map[string]User{usr.ID: usr}}
	revoked := newMemRevocationRepo()
	svc := NewTokenService(conf, repo, revoked)

	token, err := svc.Issue(ctx, usr)
	if err != nil {
		t.Fatalf("Issue(): %v", err)
	}
	if _, err = svc.Verify(ctx, token); err != nil {
		t.Fatalf("Verify() before revoke: %v", err)
	}

	if err = svc.Revoke(ctx, token); err != nil {
		t.Fatalf("Revoke(): %v", err)
	}
	if _, err = svc.Verify(ctx, token); err != ErrTokenRevoked {
		t.Errorf("Verify() after revoke error = %v, want %v", err, ErrTokenRevoked)
	}

	// revoking again is a no-op
	if err = svc.Revoke(ctx, token); err != nil {
		t.Fatalf("Revoke() twice: %v", err)
	}
	if _, err = svc.Verify(ctx, token); err != ErrTokenRevoked {
		t.Errorf("Verify() after double revoke error = %v, want %v", err, ErrTokenRevoked)
	}
}

func TestTokenService_RevokeMalformed(t *testing.T) {
	ctx := context.Background()
	conf := testConfig()

	revoked := newMemRevocationRepo()
	svc := NewTokenService(conf, &memUserRepo{}, revoked)

	// logout never fails, even for strings that were never tokens
	if err := svc.Revoke(ctx, "not-a-token"); err != nil {
		t.Fatalf("Revoke(): %v", err)
	}
	ok, err := revoked.IsTokenRevoked(ctx, "not-a-token")
	if err != nil {
		t.Fatalf("IsTokenRevoked(): %v", err)
	}
	if !ok {
		t.Error("malformed token was not recorded on the deny-list")
	}
}

func TestTokenService_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	conf := testConfig()

	usr := User{ID: "u-1", Email: "t@test.cd", Role: RoleUser, IsActive: true}
	repo := &memUserRepo{users: map[string]User{usr.ID: usr}}
	revoked := newMemRevocationRepo()
	svc := NewTokenService(conf, repo, revoked)

	// expired long ago
	nowFunc = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	oldToken, _ := svc.Issue(ctx, usr)
	_ = svc.Revoke(ctx, oldToken)
	nowFunc = time.Now // reset

	freshToken, _ := svc.Issue(ctx, usr)
	_ = svc.Revoke(ctx, freshToken)

	n, err := revoked.PurgeExpiredTokens(ctx, time.Now())
	if err != nil {
		t.Fatalf("PurgeExpiredTokens(): %v", err)
	}
	if n != 1 {
		t.Errorf("PurgeExpiredTokens() = %d, want 1", n)
	}
	if ok, _ := revoked.IsTokenRevoked(ctx, freshToken); !ok {
		t.Error("fresh entry must survive the purge")
	}
	if ok, _ := revoked.IsTokenRevoked(ctx, oldToken); ok {
		t.Error("expired entry must be purged")
	}
}
