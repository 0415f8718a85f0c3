//go:generate mockery --name TokenService --output ./mocks --outpkg mocks --case=underscore
package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure reasons. Anything else coming out of Verify is a
// signing-infrastructure fault.
var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMalformedToken   = errors.New("malformed token")
)

// Claims is the verified content of a session token.
type Claims struct {
	UserID    uint
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies RS256-signed session tokens. Stateless per
// call; the only state is the immutable key pair.
type TokenService interface {
	Issue(userID uint) (string, error)
	Verify(tokenString string) (*Claims, error)
}

type tokenService struct {
	keys   *KeyPair
	issuer string
	ttl    time.Duration
}

func NewTokenService(keys *KeyPair, issuer string, ttl time.Duration) TokenService {
	return &tokenService{keys: keys, issuer: issuer, ttl: ttl}
}

func (s *tokenService) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.keys.Private())
	if err != nil {
		return "", fmt.Errorf("security: failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and checks a compact token. The accepted algorithm is pinned
// to RS256; a header asserting anything else is rejected before signature
// checking, closing the algorithm-confusion hole.
func (s *tokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.keys.Public(), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformedToken
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrMalformedToken
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return nil, ErrMalformedToken
	}
	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return nil, ErrMalformedToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrMalformedToken
	}
	result := &Claims{UserID: uint(userID), ExpiresAt: exp.Time}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		result.IssuedAt = iat.Time
	}
	return result, nil
}
