// Package tokens issues and decodes the signed bearer tokens used as session keys.
package tokens

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"tracking/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTTL = 480 * time.Minute

// ErrInvalidToken is the only error Decode returns. Signature, structure and
// expiry failures are deliberately indistinguishable.
var ErrInvalidToken = errors.New("invalid token")

// Config is injected once at construction; nothing is read from globals later.
type Config struct {
	Secret    string
	Algorithm string
	TTL       time.Duration
	Issuer    string
}

// JWTCodec implements ports.TokenCodec with HMAC-signed JWTs.
type JWTCodec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	issuer string
	clock  ports.Clock
	parser *jwt.Parser
}

func NewJWTCodec(cfg Config, clock ports.Clock) (*JWTCodec, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported token algorithm %q", cfg.Algorithm)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithTimeFunc(clock.Now),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &JWTCodec{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		clock:  clock,
		parser: jwt.NewParser(opts...),
	}, nil
}

func (c *JWTCodec) DefaultTTL() time.Duration {
	return c.ttl
}

// Issue signs claims with exp = now + ttl, truncated to whole seconds as JWT
// numeric dates are. iat and a random jti are added so two tokens issued in the
// same second never collide.
func (c *JWTCodec) Issue(claims ports.Claims, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	now := c.clock.Now()
	expiresAt := now.Add(ttl).Truncate(time.Second)

	mc := jwt.MapClaims{}
	maps.Copy(mc, claims)
	mc[ports.ClaimExpiresAt] = jwt.NewNumericDate(expiresAt)
	mc[ports.ClaimIssuedAt] = jwt.NewNumericDate(now)
	if _, ok := mc[ports.ClaimTokenID]; !ok {
		mc[ports.ClaimTokenID] = uuid.NewString()
	}
	if c.issuer != "" {
		mc[ports.ClaimIssuer] = c.issuer
	}

	signed, err := jwt.NewWithClaims(c.method, mc).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt.UTC(), nil
}

func (c *JWTCodec) Decode(token string) (ports.Claims, error) {
	mc := jwt.MapClaims{}
	parsed, err := c.parser.ParseWithClaims(token, mc, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return ports.Claims(mc), nil
}
