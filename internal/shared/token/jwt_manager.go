package token

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("token: invalid token")
	ErrExpiredToken  = errors.New("token: expired token")
	ErrInvalidClaims = errors.New("token: invalid claims")
)

const (
	ACCESS  = "access"
	REFRESH = "refresh"
)

// Identity is what a token asserts about its bearer
type Identity struct {
	UserID   uint32
	MemberID uint32
	Email    string
	Name     string
	IsAdmin  bool
}

// Claims carries the identity. Subject holds the user id, ID (jti) identifies the token for revocation.
type Claims struct {
	MemberID  uint32 `json:"member_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (uint32, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0, ErrInvalidClaims
	}
	return uint32(id), nil
}

func (c *Claims) Identity() (Identity, error) {
	userID, err := c.UserID()
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		UserID:   userID,
		MemberID: c.MemberID,
		Email:    c.Email,
		Name:     c.Name,
		IsAdmin:  c.IsAdmin,
	}, nil
}

type Manager interface {
	GenerateAccessToken(id Identity) (string, error)
	GenerateRefreshToken(id Identity) (string, error)
	// ValidateToken fully validates an access token
	ValidateToken(tokenString string) (*Claims, error)
	// ValidateRefreshToken checks signature, issuer, audience and type but ignores expiry
	ValidateRefreshToken(tokenString string) (*Claims, error)
	AccessExpiry() time.Duration
	RefreshExpiry() time.Duration
}

type JWTManager struct {
	secret        []byte
	issuer        string
	audience      string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{
		secret:        []byte(cfg.JWT.Secret),
		issuer:        cfg.JWT.Issuer,
		audience:      cfg.JWT.Audience,
		accessExpiry:  cfg.JWT.Expiry,
		refreshExpiry: cfg.JWT.RefreshExpiry,
		now:           time.Now,
	}
}

func (m *JWTManager) AccessExpiry() time.Duration {
	return m.accessExpiry
}

func (m *JWTManager) RefreshExpiry() time.Duration {
	return m.refreshExpiry
}

func (m *JWTManager) GenerateAccessToken(id Identity) (string, error) {
	return m.sign(id, ACCESS, m.accessExpiry)
}

func (m *JWTManager) GenerateRefreshToken(id Identity) (string, error) {
	return m.sign(id, REFRESH, m.refreshExpiry)
}

func (m *JWTManager) sign(id Identity, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()

	claims := Claims{
		MemberID:  id.MemberID,
		Email:     id.Email,
		Name:      id.Name,
		IsAdmin:   id.IsAdmin,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(id.UserID), 10),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithTimeFunc(m.now),
	)

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, m.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != ACCESS {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

func (m *JWTManager) ValidateRefreshToken(tokenString string) (*Claims, error) {
	// 만료 검증 생략: iss/aud/type은 아래에서 직접 확인
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, m.keyFunc)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	if claims.Issuer != m.issuer || !slices.Contains(claims.Audience, m.audience) {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != REFRESH {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

func (m *JWTManager) keyFunc(*jwt.Token) (interface{}, error) {
	return m.secret, nil
}
