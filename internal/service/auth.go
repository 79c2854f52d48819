package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/carhive-dev/carhive/internal/domain"
	"github.com/carhive-dev/carhive/internal/errors"
	"github.com/carhive-dev/carhive/internal/logger"
)

type AuthService interface {
	Signup(creds domain.Credentials) (string, error)
	Login(creds domain.Credentials) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	User(email string) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage: storage, jwt: jwt}
}

// Signup creates an account and returns a fresh access token. The
// existence pre-check gives a friendly conflict early; the storage layer
// maps a late unique violation from a concurrent signup to the same
// conflict, so the constraint stays the source of truth.
func (a *Auth) Signup(creds domain.Credentials) (string, error) {
	email := strings.ToLower(creds.Email)

	_, err := a.storage.User(email)
	if err == nil {
		return "", errors.Conflict("User already exists, please try logging in")
	}
	if !errors.IsNotFound(err) {
		return "", err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return "", err
	}

	user := domain.User{Email: email, PassHash: string(passHash)}
	id, err := a.storage.SaveUser(user)
	if err != nil {
		return "", err
	}
	user.Id = id

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return "", err
	}

	return token, nil
}

// Login verifies credentials and returns an access token. Every failed
// attempt is independent; there is no lockout or attempt counting.
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	email := strings.ToLower(creds.Email)

	user, err := a.storage.User(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.NotFound("User does not exist, please sign up")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Debug("password verification failed", "error", err)
		return "", errors.Unauthorized("Invalid credentials")
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return "", err
	}

	return token, nil
}
