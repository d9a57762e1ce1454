package authtoken

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const bearerPrefix = "Bearer "

var (
	ErrMissingToken   = errors.New("missing or invalid Authorization header")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrSubjectInvalid = errors.New("token subject missing or invalid")
)

// Claims is the token payload the verifier understands. The subject carries
// the user id; email is optional.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Verifier validates HMAC-signed bearer tokens against a pre-shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// VerifyBearer validates an Authorization header value of the form
// "Bearer <token>" and extracts the principal from the verified claims.
func (v *Verifier) VerifyBearer(header string) (Principal, error) {
	token := resolveToken(header)
	if token == "" {
		return Principal{}, ErrMissingToken
	}
	return v.Verify(token)
}

// Verify validates a raw token string.
func (v *Verifier) Verify(tokenString string) (Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrTokenExpired
		}
		return Principal{}, ErrInvalidToken
	}
	if !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return Principal{}, ErrSubjectInvalid
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Principal{}, ErrSubjectInvalid
	}

	return Principal{UserID: userID, Email: claims.Email}, nil
}

// IssueToken signs an HS256 token for the given user. Used by tests and local
// tooling; production tokens come from the identity provider.
func (v *Verifier) IssueToken(userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	})
	return token.SignedString(v.secret)
}

func resolveToken(header string) string {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
}
