package authn

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/pkg/access"
)

// PrincipalLoader loads the current role and tenant links of a user.
type PrincipalLoader interface {
	// PrincipalByID returns ErrUnknownPrincipal when the user does not exist.
	PrincipalByID(ctx context.Context, id uuid.UUID) (*access.Principal, error)
}

// Verifier signs and verifies bearer tokens.
type Verifier struct {
	secret []byte
	issuer string
	ttl    time.Duration
	loader PrincipalLoader
	parser *jwt.Parser
	now    func() time.Time
}

// NewVerifier creates a verifier backed by loader.
func NewVerifier(cfg Config, loader PrincipalLoader) (*Verifier, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	if loader == nil {
		return nil, errors.New("authn: principal loader cannot be nil")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(cfg.Leeway),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &Verifier{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
		loader: loader,
		parser: jwt.NewParser(opts...),
		now:    time.Now,
	}, nil
}

// Issue signs a token for userID. A non-positive ttl uses Config.TokenTTL.
func (v *Verifier) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = v.ttl
	}
	now := v.now()
	claims := jwt.RegisteredClaims{
		Issuer:    v.issuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Verify parses token and loads its principal.
func (v *Verifier) Verify(ctx context.Context, token string) (*access.Principal, error) {
	var claims jwt.RegisteredClaims
	if _, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}); err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return v.loader.PrincipalByID(ctx, userID)
}

// MemoryLoader is a thread-safe in-memory PrincipalLoader.
type MemoryLoader struct {
	mu         sync.RWMutex
	principals map[uuid.UUID]*access.Principal
}

// NewMemoryLoader creates a loader seeded with principals.
func NewMemoryLoader(principals ...*access.Principal) *MemoryLoader {
	l := &MemoryLoader{principals: make(map[uuid.UUID]*access.Principal, len(principals))}
	for _, p := range principals {
		l.Put(p)
	}
	return l
}

// Put inserts or replaces a principal.
func (l *MemoryLoader) Put(p *access.Principal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.principals[p.ID] = p
}

// PrincipalByID implements PrincipalLoader.
func (l *MemoryLoader) PrincipalByID(_ context.Context, id uuid.UUID) (*access.Principal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.principals[id]
	if !ok {
		return nil, ErrUnknownPrincipal
	}
	return p, nil
}
