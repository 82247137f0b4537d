package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// Claims carries the identity extracted from a validated token
type Claims struct {
	UserID string   `json:"sub"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTConfig configures token validation
type JWTConfig struct {
	SigningMethod string
	SecretKey     string
	Issuer        string
	Audience      []string
}

// JWTValidator validates bearer tokens
type JWTValidator struct {
	config JWTConfig
}

// NewJWTValidator creates a validator for the given configuration
func NewJWTValidator(config JWTConfig) (*JWTValidator, error) {
	if config.SecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}
	if config.SigningMethod == "" {
		config.SigningMethod = "HS256"
	}
	return &JWTValidator{config: config}, nil
}

// ValidateToken parses and validates a token string, returning its claims
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != v.config.SigningMethod {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(v.config.SecretKey), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrInvalidToken
		}
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if v.config.Issuer != "" && claims.Issuer != v.config.Issuer {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// JWTGeneratorConfig configures token generation
type JWTGeneratorConfig struct {
	SigningMethod string
	SecretKey     string
	Issuer        string
	Audience      []string
	ExpiryTime    time.Duration
}

// JWTGenerator issues tokens, used by development tooling and tests
type JWTGenerator struct {
	config JWTGeneratorConfig
}

// NewJWTGenerator creates a token generator
func NewJWTGenerator(config JWTGeneratorConfig) (*JWTGenerator, error) {
	if config.SecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}
	if config.SigningMethod == "" {
		config.SigningMethod = "HS256"
	}
	if config.ExpiryTime == 0 {
		config.ExpiryTime = 24 * time.Hour
	}
	return &JWTGenerator{config: config}, nil
}

// GenerateToken issues a signed token for the given identity
func (g *JWTGenerator) GenerateToken(userID, email string, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.config.Issuer,
			Audience:  g.config.Audience,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.config.ExpiryTime)),
		},
	}

	token := jwt.NewWithClaims(jwt.GetSigningMethod(g.config.SigningMethod), claims)
	return token.SignedString([]byte(g.config.SecretKey))
}
