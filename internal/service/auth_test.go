package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/carhive-dev/carhive/internal/domain"
	internal_errors "github.com/carhive-dev/carhive/internal/errors"
)

// --- Mocks ---

type MockAuthStorage struct {
	SaveUserFunc func(user domain.User) (domain.UserId, error)
	UserFunc     func(email string) (domain.User, error)
}

func (m *MockAuthStorage) SaveUser(user domain.User) (domain.UserId, error) {
	if m.SaveUserFunc != nil {
		return m.SaveUserFunc(user)
	}
	return "user-1", nil
}

func (m *MockAuthStorage) User(email string) (domain.User, error) {
	if m.UserFunc != nil {
		return m.UserFunc(email)
	}
	return domain.User{}, internal_errors.NotFound("User not found")
}

type MockJwt struct {
	NewTokenFunc func(user domain.User) (string, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(user)
	}
	return "token", nil
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var e *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &e)
	return e.StatusCode
}

// --- Signup ---

func TestSignup(t *testing.T) {
	t.Run("creates user with hashed password and returns token", func(t *testing.T) {
		var saved domain.User
		storage := &MockAuthStorage{
			SaveUserFunc: func(user domain.User) (domain.UserId, error) {
				saved = user
				return "user-1", nil
			},
		}
		jwt := &MockJwt{
			NewTokenFunc: func(user domain.User) (string, error) {
				assert.Equal(t, "user-1", user.Id)
				return "signed-token", nil
			},
		}
		auth := NewAuth(storage, jwt)

		token, err := auth.Signup(domain.Credentials{Email: "A@X.com", Password: "1234"})
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)

		assert.Equal(t, "a@x.com", saved.Email)
		assert.NotEqual(t, "1234", saved.PassHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PassHash), []byte("1234")))
	})

	t.Run("existing email conflicts, nothing saved", func(t *testing.T) {
		savedCalls := 0
		storage := &MockAuthStorage{
			UserFunc: func(email string) (domain.User, error) {
				return domain.User{Id: "user-1", Email: email}, nil
			},
			SaveUserFunc: func(user domain.User) (domain.UserId, error) {
				savedCalls++
				return "", nil
			},
		}
		auth := NewAuth(storage, &MockJwt{})

		_, err := auth.Signup(domain.Credentials{Email: "a@x.com", Password: "1234"})
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, statusCode(t, err))
		assert.Equal(t, "User already exists, please try logging in", err.Error())
		assert.Zero(t, savedCalls)
	})

	t.Run("late unique violation surfaces as the same conflict", func(t *testing.T) {
		// The pre-check misses a concurrent signup; the store reports
		// the constraint violation instead.
		storage := &MockAuthStorage{
			SaveUserFunc: func(user domain.User) (domain.UserId, error) {
				return "", internal_errors.Conflict("User already exists, please try logging in")
			},
		}
		auth := NewAuth(storage, &MockJwt{})

		_, err := auth.Signup(domain.Credentials{Email: "a@x.com", Password: "1234"})
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, statusCode(t, err))
	})

	t.Run("storage lookup error propagates", func(t *testing.T) {
		mockErr := errors.New("db down")
		storage := &MockAuthStorage{
			UserFunc: func(email string) (domain.User, error) {
				return domain.User{}, mockErr
			},
		}
		auth := NewAuth(storage, &MockJwt{})

		_, err := auth.Signup(domain.Credentials{Email: "a@x.com", Password: "1234"})
		assert.ErrorIs(t, err, mockErr)
	})
}

// --- Login ---

func TestLogin(t *testing.T) {
	passHash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
	require.NoError(t, err)
	storedUser := domain.User{Id: "user-1", Email: "a@x.com", PassHash: string(passHash)}

	t.Run("valid credentials return token", func(t *testing.T) {
		storage := &MockAuthStorage{
			UserFunc: func(email string) (domain.User, error) {
				assert.Equal(t, "a@x.com", email)
				return storedUser, nil
			},
		}
		jwt := &MockJwt{
			NewTokenFunc: func(user domain.User) (string, error) {
				assert.Equal(t, storedUser.Id, user.Id)
				return "signed-token", nil
			},
		}
		auth := NewAuth(storage, jwt)

		token, err := auth.Login(domain.Credentials{Email: "A@X.com", Password: "1234"})
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
	})

	t.Run("unknown email", func(t *testing.T) {
		auth := NewAuth(&MockAuthStorage{}, &MockJwt{})

		_, err := auth.Login(domain.Credentials{Email: "nope@x.com", Password: "1234"})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, statusCode(t, err))
		assert.Equal(t, "User does not exist, please sign up", err.Error())
	})

	t.Run("wrong password", func(t *testing.T) {
		storage := &MockAuthStorage{
			UserFunc: func(email string) (domain.User, error) {
				return storedUser, nil
			},
		}
		auth := NewAuth(storage, &MockJwt{})

		_, err := auth.Login(domain.Credentials{Email: "a@x.com", Password: "wrong"})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, statusCode(t, err))
		assert.Equal(t, "Invalid credentials", err.Error())
	})

	t.Run("malformed stored hash is a non-match, not a panic", func(t *testing.T) {
		storage := &MockAuthStorage{
			UserFunc: func(email string) (domain.User, error) {
				return domain.User{Id: "user-1", Email: email, PassHash: "not-a-bcrypt-hash"}, nil
			},
		}
		auth := NewAuth(storage, &MockJwt{})

		_, err := auth.Login(domain.Credentials{Email: "a@x.com", Password: "1234"})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, statusCode(t, err))
	})
}

// Signup then login with the same credentials round-trips through the
// hash stored by signup.
func TestSignupThenLogin(t *testing.T) {
	users := map[string]domain.User{}
	storage := &MockAuthStorage{
		SaveUserFunc: func(user domain.User) (domain.UserId, error) {
			user.Id = "user-1"
			users[user.Email] = user
			return user.Id, nil
		},
		UserFunc: func(email string) (domain.User, error) {
			user, ok := users[email]
			if !ok {
				return domain.User{}, internal_errors.NotFound("User not found")
			}
			return user, nil
		},
	}
	auth := NewAuth(storage, &MockJwt{})

	_, err := auth.Signup(domain.Credentials{Email: "a@x.com", Password: "1234"})
	require.NoError(t, err)

	_, err = auth.Login(domain.Credentials{Email: "a@x.com", Password: "1234"})
	assert.NoError(t, err)

	_, err = auth.Login(domain.Credentials{Email: "a@x.com", Password: "wrong"})
	assert.Error(t, err)
}
