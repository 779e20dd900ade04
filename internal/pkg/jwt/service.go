package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims are the identity provider's token claims. Subject is the opaque user id and
// ID (jti) is what revocation is keyed on.
type Claims struct {
	Email string `json:"email,omitempty"`

	jwtlib.RegisteredClaims
}

func (c Claims) UserID() string {
	return c.Subject
}

type Service interface {
	GenerateToken(subject, email string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (Claims, error)
}

type HMACService struct {
	secret []byte
	issuer string

	now func() time.Time
}

// NewHMACService verifies HS256 tokens signed with secret. A non-empty issuer must
// match the token's iss claim.
func NewHMACService(secret, issuer string) *HMACService {
	return &HMACService{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}
}

// GenerateToken mints a token the way the identity provider does. Used by tooling
// and tests.
func (s *HMACService) GenerateToken(subject, email string, ttl time.Duration) (string, error) {
	subject = strings.TrimSpace(subject)
	if len(s.secret) == 0 || subject == "" || ttl <= 0 {
		return "", ErrTokenInvalid
	}
	now := s.now().UTC()

	c := Claims{
		Email: email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(s.issuer))
	}
	p := jwtlib.NewParser(opts...)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(c.Subject) == "" {
		return Claims{}, ErrTokenInvalid
	}

	return c, nil
}
