package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/devmitra/auth_backend/internal/apperrors"
	"github.com/devmitra/auth_backend/internal/core/domain"
	"github.com/devmitra/auth_backend/internal/core/services"
	"github.com/devmitra/auth_backend/internal/handlers"
	"github.com/devmitra/auth_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

// fakeUserRepo is an in-memory UserRepository so the full HTTP surface can be
// exercised without a database.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Mobile == user.Mobile {
			return nil, apperrors.ErrDuplicate
		}
	}
	user.UserID = r.nextID
	user.CreatedAt = time.Now()
	user.LastUpdatedAt = user.CreatedAt
	r.nextID++
	r.users[user.UserID] = &user
	copied := user
	return &copied, nil
}

func (r *fakeUserRepo) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindUserByIDAndAccessToken(ctx context.Context, userID int64, accessToken string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok || user.AccessToken == nil || *user.AccessToken != accessToken {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindUserByIDAndRefreshToken(ctx context.Context, userID int64, refreshToken string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok || user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdateTokens(ctx context.Context, userID int64, accessToken, refreshToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.AccessToken = &accessToken
	user.RefreshToken = &refreshToken
	user.LastUpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) UpdateAccessToken(ctx context.Context, userID int64, accessToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.AccessToken = &accessToken
	user.LastUpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) ClearRefreshToken(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.RefreshToken = nil
	user.LastUpdatedAt = time.Now()
	return nil
}

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	repo   *fakeUserRepo
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:                  "handler-access-secret",
		JWTRefreshSecret:           "handler-refresh-secret",
		JWTExpiryDuration:          15 * time.Minute,
		RefreshTokenExpiryDuration: 7 * 24 * time.Hour,
		JWTIssuer:                  "auth-backend-test",
	}

	s.repo = newFakeUserRepo()
	tokenSvc := services.NewTokenService(cfg)
	authSvc := services.NewAuthService(s.repo, tokenSvc)

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, authSvc, tokenSvc, s.repo)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) postJSON(path string, payload any, headers map[string]string) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	s.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerTestSuite) get(path string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerTestSuite) signup(name, email, mobile, password string) *httptest.ResponseRecorder {
	return s.postJSON("/api/signup", gin.H{
		"name": name, "email": email, "mobile": mobile, "password": password,
	}, nil)
}

func (s *AuthHandlerTestSuite) login(email, password string) (string, string) {
	w := s.postJSON("/api/login", gin.H{"email": email, "password": password}, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Require().NotEmpty(body["accessToken"])
	s.Require().NotEmpty(body["refreshToken"])
	return body["accessToken"], body["refreshToken"]
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": fmt.Sprintf("Bearer %s", token)}
}

func (s *AuthHandlerTestSuite) TestHealth() {
	w := s.get("/health", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *AuthHandlerTestSuite) TestSignup_Created() {
	w := s.signup("A", "a@x.com", "1", "p")
	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), "User registered successfully")
}

func (s *AuthHandlerTestSuite) TestSignup_MissingField() {
	w := s.postJSON("/api/signup", gin.H{"name": "A", "email": "a@x.com", "mobile": "1"}, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *AuthHandlerTestSuite) TestSignup_DuplicateEmail() {
	s.Require().Equal(http.StatusCreated, s.signup("A", "a@x.com", "1", "p").Code)

	w := s.signup("B", "a@x.com", "2", "q")
	s.Equal(http.StatusConflict, w.Code)
	s.Contains(w.Body.String(), "Email or Mobile already exists")
}

func (s *AuthHandlerTestSuite) TestSignup_DuplicateMobile() {
	s.Require().Equal(http.StatusCreated, s.signup("A", "a@x.com", "1", "p").Code)

	w := s.signup("B", "b@x.com", "1", "q")
	s.Equal(http.StatusConflict, w.Code)
}

func (s *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	s.Require().Equal(http.StatusCreated, s.signup("A", "a@x.com", "1", "p").Code)

	wrongPassword := s.postJSON("/api/login", gin.H{"email": "a@x.com", "password": "nope"}, nil)
	s.Equal(http.StatusUnauthorized, wrongPassword.Code)

	unknownEmail := s.postJSON("/api/login", gin.H{"email": "b@x.com", "password": "p"}, nil)
	s.Equal(http.StatusUnauthorized, unknownEmail.Code)

	// Both failures produce the same body.
	s.Equal(wrongPassword.Body.String(), unknownEmail.Body.String())
}

func (s *AuthHandlerTestSuite) TestLogin_MissingField() {
	w := s.postJSON("/api/login", gin.H{"email": "a@x.com"}, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *AuthHandlerTestSuite) TestMe_RequiresToken() {
	w := s.get("/api/me", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerTestSuite) TestSecondLoginInvalidatesFirstToken() {
	s.Require().Equal(http.StatusCreated, s.signup("A", "a@x.com", "1", "p").Code)

	first, _ := s.login("a@x.com", "p")
	second, _ := s.login("a@x.com", "p")

	// Token #1 has not cryptographically expired, but login #2 overwrote the
	// stored value, so the guard rejects it.
	w := s.get("/api/me", bearer(first))
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(w.Body.String(), "Token expired or invalid")

	w = s.get("/api/me", bearer(second))
	s.Equal(http.StatusOK, w.Code)
}

func (s *AuthHandlerTestSuite) TestRefresh_MissingToken() {
	w := s.postJSON("/api/refresh", gin.H{}, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(w.Body.String(), "Refresh token required")
}

func (s *AuthHandlerTestSuite) TestRefresh_GarbageToken() {
	w := s.postJSON("/api/refresh", gin.H{"refreshToken": "garbage"}, nil)
	s.Equal(http.StatusForbidden, w.Code)
	s.Contains(w.Body.String(), "Invalid or expired refresh token")
}

func (s *AuthHandlerTestSuite) TestRefresh_IssuesNewAccessToken() {
	s.Require().Equal(http.StatusCreated, s.signup("A", "a@x.com", "1", "p").Code)
	oldAccess, refresh := s.login("a@x.com", "p")

	w := s.postJSON("/api/refresh", gin.H{"refreshToken": refresh}, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	newAccess := body["accessToken"]
	s.NotEmpty(newAccess)

	// The refreshed access token replaces the login-issued one at the guard.
	s.Equal(http.StatusOK, s.get("/api/me", bearer(newAccess)).Code)
	s.Equal(http.StatusUnauthorized, s.get("/api/me", bearer(oldAccess)).Code)

	// The same refresh token remains usable; refresh does not rotate it.
	s.Equal(http.StatusOK, s.postJSON("/api/refresh", gin.H{"refreshToken": refresh}, nil).Code)
}

func (s *AuthHandlerTestSuite) TestEndToEndScenario() {
	s.Require().Equal(http.StatusCreated, s.signup("A", "a@x.com", "1", "p").Code)

	access, refresh := s.login("a@x.com", "p")

	me := s.get("/api/me", bearer(access))
	s.Require().Equal(http.StatusOK, me.Code)
	var meBody struct {
		Message string `json:"message"`
		User    struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	s.Require().NoError(json.Unmarshal(me.Body.Bytes(), &meBody))
	s.Equal("a@x.com", meBody.User.Email)

	logout := s.postJSON("/api/logout", nil, bearer(access))
	s.Require().Equal(http.StatusOK, logout.Code)
	s.Contains(logout.Body.String(), "Logged out successfully")

	// Logout cleared the refresh token: the old refresh token is dead...
	w := s.postJSON("/api/refresh", gin.H{"refreshToken": refresh}, nil)
	s.Equal(http.StatusForbidden, w.Code)

	// ...but the still-unexpired access token keeps working until expiry.
	s.Equal(http.StatusOK, s.get("/api/me", bearer(access)).Code)
}
