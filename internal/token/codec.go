package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

// Class selects which signing secret and lifetime a token is bound to.
// A leaked access secret must not be able to forge refresh tokens, so the
// two classes never share key material.
type Class string

const (
	ClassAccess  Class = "access"
	ClassRefresh Class = "refresh"
)

type Claims struct {
	Subject   string
	Role      model.Role
	Class     Class
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Codec signs and verifies bearer tokens. It is stateless; revocation lives
// in the session store, not here.
type Codec struct {
	cfg Config
	now func() time.Time
}

func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("token secrets are required for both classes")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	return &Codec{cfg: cfg, now: func() time.Time { return time.Now().UTC() }}, nil
}

// WithClock overrides the codec's clock. Tests use this to cross expiry
// boundaries without sleeping.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

func (c *Codec) TTL(class Class) time.Duration {
	if class == ClassRefresh {
		return c.cfg.RefreshTTL
	}
	return c.cfg.AccessTTL
}

func (c *Codec) Issue(subjectID string, role model.Role, class Class) (string, error) {
	now := c.now()
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"role": string(role),
		"typ":  string(class),
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(c.TTL(class)).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret(class))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", class, err)
	}
	return signed, nil
}

// Verify checks signature, class and expiry. It distinguishes expiry from
// tampering so callers can tell a client to refresh rather than re-login.
func (c *Codec) Verify(tokenString string, class Class) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidSignature
		}
		return c.secret(class), nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrInvalidSignature
	}

	claims, err := c.extract(parsed, class)
	if err != nil {
		return nil, err
	}
	if c.now().After(claims.ExpiresAt) {
		return nil, model.ErrTokenExpired
	}
	return claims, nil
}

// DecodeExpired verifies the signature and class but tolerates an elapsed
// lifetime. Logout uses it to recover the subject id for session cleanup.
func (c *Codec) DecodeExpired(tokenString string, class Class) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidSignature
		}
		return c.secret(class), nil
	}, jwt.WithTimeFunc(c.now), jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, model.ErrInvalidSignature
	}

	return c.extract(parsed, class)
}

func (c *Codec) extract(parsed *jwt.Token, class Class) (*Claims, error) {
	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidSignature
	}

	typ, _ := claimsMap["typ"].(string)
	if typ != string(class) {
		return nil, model.ErrInvalidSignature
	}

	subject, _ := claimsMap["sub"].(string)
	if subject == "" {
		return nil, model.ErrInvalidSignature
	}

	roleRaw, _ := claimsMap["role"].(string)
	role, ok := model.ParseRole(roleRaw)
	if !ok {
		return nil, model.ErrInvalidSignature
	}

	claims := &Claims{
		Subject: subject,
		Role:    role,
		Class:   class,
	}
	claims.TokenID, _ = claimsMap["jti"].(string)
	if iat, ok := claimsMap["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0).UTC()
	}
	if exp, ok := claimsMap["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}

	return claims, nil
}

func (c *Codec) secret(class Class) []byte {
	if class == ClassRefresh {
		return c.cfg.RefreshSecret
	}
	return c.cfg.AccessSecret
}
