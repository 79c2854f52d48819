package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carhive-dev/carhive/internal/config"
	"github.com/carhive-dev/carhive/internal/domain"
	"github.com/carhive-dev/carhive/internal/jwt"
	"github.com/carhive-dev/carhive/internal/media"
	"github.com/carhive-dev/carhive/internal/middleware"
)

// --- Mocks ---

type MockAuthService struct {
	SignupFunc func(creds domain.Credentials) (string, error)
	LoginFunc  func(creds domain.Credentials) (string, error)
}

func (m *MockAuthService) Signup(creds domain.Credentials) (string, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(creds)
	}
	return "token", nil
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(creds)
	}
	return "token", nil
}

type MockCarService struct {
	CreateFunc func(ownerId domain.UserId, draft domain.CarDraft) (domain.Car, error)
	AllFunc    func() ([]domain.CarWithOwner, error)
	MineFunc   func(ownerId domain.UserId) ([]domain.Car, error)
	SearchFunc func(keyword string) ([]domain.Car, error)
	UpdateFunc func(id domain.CarId, callerId domain.UserId, draft domain.CarDraft, replaceImages bool) (domain.Car, error)
	DeleteFunc func(id domain.CarId, callerId domain.UserId) (domain.Car, error)
}

func (m *MockCarService) Create(ownerId domain.UserId, draft domain.CarDraft) (domain.Car, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ownerId, draft)
	}
	return domain.Car{}, nil
}

func (m *MockCarService) All() ([]domain.CarWithOwner, error) {
	if m.AllFunc != nil {
		return m.AllFunc()
	}
	return nil, nil
}

func (m *MockCarService) Mine(ownerId domain.UserId) ([]domain.Car, error) {
	if m.MineFunc != nil {
		return m.MineFunc(ownerId)
	}
	return nil, nil
}

func (m *MockCarService) Search(keyword string) ([]domain.Car, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(keyword)
	}
	return nil, nil
}

func (m *MockCarService) Update(id domain.CarId, callerId domain.UserId, draft domain.CarDraft, replaceImages bool) (domain.Car, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, callerId, draft, replaceImages)
	}
	return domain.Car{}, nil
}

func (m *MockCarService) Delete(id domain.CarId, callerId domain.UserId) (domain.Car, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id, callerId)
	}
	return domain.Car{}, nil
}

type MockMediaStore struct {
	UploadAllFunc func(ctx context.Context, images []*media.PendingImage) ([]string, error)
}

func (m *MockMediaStore) UploadAll(ctx context.Context, images []*media.PendingImage) ([]string, error) {
	if m.UploadAllFunc != nil {
		return m.UploadAllFunc(ctx, images)
	}
	urls := make([]string, len(images))
	for i, img := range images {
		urls[i] = "http://media/" + img.Filename
	}
	return urls, nil
}

// --- Helpers ---

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{
		MaxImages:     10,
		MaxUploadSize: 32 << 20,
		AllowedMimes:  []string{"image/jpeg", "image/png"},
	}}
}

func createRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	return httptest.NewRequest(method, target, reader)
}

// authedRequest attaches an authenticated identity the way the auth
// middleware would.
func authedRequest(t *testing.T, method, target string, body io.Reader, userId string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	claims := &jwt.Claims{Id: userId, Email: userId + "@x.com"}
	return req.WithContext(context.WithValue(req.Context(), middleware.UserClaimsKey, claims))
}

// carForm builds a multipart body with the json payload and optional
// fake image files.
func carForm(t *testing.T, jsonPayload string, imageNames ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	require.NoError(t, mw.WriteField("json", jsonPayload))

	for _, name := range imageNames {
		part, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst))
}
