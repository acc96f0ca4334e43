package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the access token lifetime when none is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is what a verified access token says about its holder.
type Claims struct {
	UserID    int64
	Username  string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type jwtClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token whose subject is the user id.
func (m *TokenManager) Issue(userID int64, username string) (string, Claims, error) {
	now := m.now().UTC()
	jti := uuid.NewString()

	cl := jwtClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(m.secret)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, toClaims(cl, userID), nil
}

// Parse verifies signature, algorithm and expiry. Every failure is ErrInvalidToken.
func (m *TokenManager) Parse(raw string) (Claims, error) {
	var out jwtClaims
	tkn, err := jwt.ParseWithClaims(raw, &out, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tkn.Valid {
		return Claims{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(out.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Claims{}, ErrInvalidToken
	}
	return toClaims(out, userID), nil
}

func toClaims(cl jwtClaims, userID int64) Claims {
	c := Claims{UserID: userID, Username: cl.Username, JTI: cl.ID}
	if cl.IssuedAt != nil {
		c.IssuedAt = cl.IssuedAt.Time
	}
	if cl.ExpiresAt != nil {
		c.ExpiresAt = cl.ExpiresAt.Time
	}
	return c
}
