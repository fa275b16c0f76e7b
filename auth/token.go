package auth

import (
	"fmt"
	"time"

	"chat-store/domain"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "chat-store"

// CustomClaims defines the data stored inside the JWT. The subject is the
// hex account id the token was issued for.
type CustomClaims struct {
	AccountID string `json:"account_id"`
	jwt.RegisteredClaims
}

// Authenticator signs and checks bearer tokens for one profile.
type Authenticator struct {
	key       []byte
	accountID domain.ID
	duration  time.Duration
}

func NewAuthenticator(secret string, accountID domain.ID, duration time.Duration) *Authenticator {
	return &Authenticator{key: []byte(secret), accountID: accountID, duration: duration}
}

// GenerateToken creates a signed JWT for the profile owner.
func (a *Authenticator) GenerateToken() (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		AccountID: a.accountID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.accountID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.key)
}

// ValidateToken checks signature, expiry and that the token belongs to the
// profile owner.
func (a *Authenticator) ValidateToken(tokenString string) (domain.ID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return a.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return domain.ID{}, err
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return domain.ID{}, jwt.ErrSignatureInvalid
	}
	id, err := domain.ParseID(claims.Subject)
	if err != nil {
		return domain.ID{}, err
	}
	if id != a.accountID {
		return domain.ID{}, fmt.Errorf("token issued for another account")
	}
	return id, nil
}
