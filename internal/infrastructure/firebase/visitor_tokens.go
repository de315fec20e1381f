package firebase

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"civicserve/pkg/errors"
)

// VisitorTokenIssuer mints signed tokens carrying a stable anonymous
// visitor id, so an unauthenticated chat widget keeps the same identity
// across app sessions without a Firebase account.
type VisitorTokenIssuer struct {
	secret []byte
	expiry time.Duration
}

func NewVisitorTokenIssuer(secret string, expirySeconds int64) *VisitorTokenIssuer {
	return &VisitorTokenIssuer{
		secret: []byte(secret),
		expiry: time.Duration(expirySeconds) * time.Second,
	}
}

type visitorClaims struct {
	VisitorID string `json:"visitor_id"`
	jwt.RegisteredClaims
}

// Issue creates a token for visitorID, generating a fresh id when the
// caller has none yet.
func (i *VisitorTokenIssuer) Issue(visitorID string) (token string, id string, err error) {
	if visitorID == "" {
		visitorID = uuid.New().String()
	}

	claims := visitorClaims{
		VisitorID: visitorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", "", errors.Internal("Failed to sign visitor token", err)
	}

	return signed, visitorID, nil
}

// Verify returns the visitor id embedded in a token.
func (i *VisitorTokenIssuer) Verify(token string) (string, error) {
	claims := &visitorClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthorized("Unexpected signing method", nil)
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid || claims.VisitorID == "" {
		return "", errors.Unauthorized("Invalid visitor token", err)
	}

	return claims.VisitorID, nil
}
