package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/metadata"
)

const (
	KindAdmin  = "admin"
	KindDriver = "driver"
)

// Principal represents the authenticated caller from JWT.
type Principal struct {
	Name string // "admin", or the driver id for drivers
	Kind string // "admin" | "driver"
}

// DriverID returns the driver identifier carried by a driver principal.
func (p *Principal) DriverID() (int64, error) {
	if p.Kind != KindDriver {
		return 0, errors.New("principal is not a driver")
	}
	return strconv.ParseInt(p.Name, 10, 64)
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

type claims struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer. Tokens expire ttl after issue.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for name and kind.
func (i *Issuer) Issue(name, kind string) (string, error) {
	if len(i.secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	now := i.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name: name,
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})
	return tok.SignedString(i.secret)
}

// Parse validates a token and returns its principal.
func (i *Issuer) Parse(tokenStr string) (*Principal, error) {
	return parseJWT(tokenStr, string(i.secret))
}

// ParseBearer validates an HTTP Authorization header value of the form
// "Bearer <token>".
func (i *Issuer) ParseBearer(header string) (*Principal, error) {
	tokenStr, err := bearerToken(header)
	if err != nil {
		return nil, err
	}
	return i.Parse(tokenStr)
}

// ParseFromMD extracts and validates a Bearer JWT from gRPC metadata and returns a Principal.
func ParseFromMD(ctx context.Context, secret string) (*Principal, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, errors.New("missing metadata")
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return nil, errors.New("missing authorization")
	}
	tokenStr, err := bearerToken(vals[0])
	if err != nil {
		return nil, err
	}
	return parseJWT(tokenStr, secret)
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// parseJWT validates and extracts claims from a JWT token.
func parseJWT(tokenStr string, secret string) (*Principal, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := tok.Claims.(*claims)
	if c == nil || c.Name == "" || c.Kind == "" {
		return nil, errors.New("invalid claims")
	}
	return &Principal{Name: c.Name, Kind: strings.ToLower(c.Kind)}, nil
}
