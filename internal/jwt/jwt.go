package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/carhive-dev/carhive/internal/domain"
	internal_errors "github.com/carhive-dev/carhive/internal/errors"
	"github.com/carhive-dev/carhive/internal/logger"
)

// Claims is the decoded identity carried by an access token.
type Claims struct {
	Id    domain.UserId
	Email string
}

type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(jwtStr string) (*Claims, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{}
	claims["id"] = user.Id
	claims["email"] = user.Email
	claims["exp"] = time.Now().Add(j.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", errors.New("can't create token")
	}

	return tokenString, nil
}

// DecodeToken verifies signature and expiry and extracts the identity
// claims. All failure modes collapse into the same 401 error so a caller
// can't tell an expired token from a tampered one.
func (j *Jwt) DecodeToken(jwtStr string) (*Claims, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, internal_errors.Unauthorized("Invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, internal_errors.Unauthorized("Invalid token")
	}

	id, ok := mapClaims["id"].(string)
	if !ok {
		return nil, internal_errors.Unauthorized("Invalid token")
	}
	email, ok := mapClaims["email"].(string)
	if !ok {
		return nil, internal_errors.Unauthorized("Invalid token")
	}

	return &Claims{Id: id, Email: email}, nil
}
