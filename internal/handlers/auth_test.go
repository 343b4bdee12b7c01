package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rushikeshdhande/Library-Management-System/internal/config"
	"github.com/rushikeshdhande/Library-Management-System/internal/middleware"
	"github.com/rushikeshdhande/Library-Management-System/internal/models"
	"github.com/rushikeshdhande/Library-Management-System/internal/service"
	"github.com/rushikeshdhande/Library-Management-System/internal/store"
	"github.com/rushikeshdhande/Library-Management-System/internal/utils"
)

// --- fakes ---

type memUserStore struct {
	users []*models.User
}

func (f *memUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *memUserStore) FindVerifiedByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.AccountVerified {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *memUserStore) FindUnverifiedByEmail(_ context.Context, email string) ([]models.User, error) {
	var matches []*models.User
	for _, u := range f.users {
		if u.Email == email && !u.AccountVerified {
			matches = append(matches, u)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	out := make([]models.User, len(matches))
	for i, u := range matches {
		out[i] = *u
	}
	return out, nil
}

func (f *memUserStore) CountUnverifiedByEmail(_ context.Context, email string) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.Email == email && !u.AccountVerified {
			count++
		}
	}
	return count, nil
}

func (f *memUserStore) FindByResetTokenHash(_ context.Context, hash string, now time.Time) (*models.User, error) {
	for _, u := range f.users {
		if u.ResetPasswordTokenHash != nil && *u.ResetPasswordTokenHash == hash &&
			u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now) {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *memUserStore) Create(_ context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	f.users = append(f.users, user)
	return nil
}

func (f *memUserStore) Save(_ context.Context, user *models.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return store.ErrNotFound
}

type memMailer struct {
	otpCodes  []int
	resetURLs []string
}

func (f *memMailer) SendVerificationCode(_ string, code int) error {
	f.otpCodes = append(f.otpCodes, code)
	return nil
}

func (f *memMailer) SendPasswordReset(_ string, resetURL string) error {
	f.resetURLs = append(f.resetURLs, resetURL)
	return nil
}

type memBorrowStore struct {
	borrows []models.Borrow
}

func (f *memBorrowStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Borrow, error) {
	var out []models.Borrow
	for _, b := range f.borrows {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func testConfig() config.Config {
	return config.Config{
		JwtSecret:        "test-secret",
		JwtExpireDays:    3,
		CookieExpireDays: 3,
		FrontendURL:      "https://bookworm.example.com",
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *memUserStore, *memMailer, *memBorrowStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &memUserStore{}
	mailer := &memMailer{}
	borrows := &memBorrowStore{}
	cfg := testConfig()

	svc := service.NewAuthService(users, mailer, service.Config{
		FrontendURL: cfg.FrontendURL,
		OTPWindow:   15 * time.Minute,
		ResetWindow: 15 * time.Minute,
	}, zap.NewNop())

	authHandler := NewAuthHandler(svc, cfg)
	borrowHandler := NewBorrowHandler(borrows)

	router := gin.New()
	api := router.Group("/api/v1")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/verify-otp", authHandler.VerifyOTP)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/logout", authHandler.Logout)
	api.POST("/auth/password/forgot", authHandler.ForgotPassword)
	api.PUT("/auth/password/reset/:token", authHandler.ResetPassword)

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(cfg.JwtSecret))
	protected.GET("/auth/me", authHandler.Me)
	protected.PUT("/auth/password/update", authHandler.UpdatePassword)
	protected.GET("/borrow/my-borrowed-books", borrowHandler.MyBorrowedBooks)

	return router, users, mailer, borrows
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func registerAndVerify(t *testing.T, router *gin.Engine, mailer *memMailer, email string) *http.Cookie {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		gin.H{"name": "A", "email": email, "password": "password1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	code := mailer.otpCodes[len(mailer.otpCodes)-1]
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/verify-otp",
		gin.H{"email": email, "otp": fmt.Sprintf("%06d", code)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

// --- tests ---

func TestRegisterEndpoint(t *testing.T) {
	router, users, mailer, _ := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		gin.H{"name": "A", "email": "a@x.com", "password": "password1"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Verification code sent successfully.")
	assert.Len(t, users.users, 1)
	assert.Len(t, mailer.otpCodes, 1)
}

func TestRegisterEndpoint_InvalidPayload(t *testing.T) {
	router, _, _, _ := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		gin.H{"name": "A", "password": "password1"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyOTPEndpoint_SetsSessionCookie(t *testing.T) {
	router, _, mailer, _ := setupRouter(t)
	cookie := registerAndVerify(t, router, mailer, "a@x.com")

	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)

	userID, err := utils.ParseSessionToken(cookie.Value, "test-secret")
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
}

func TestLoginEndpoint(t *testing.T) {
	router, _, mailer, _ := setupRouter(t)
	registerAndVerify(t, router, mailer, "a@x.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		gin.H{"email": "a@x.com", "password": "password1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sessionCookie(t, rec)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		gin.H{"email": "a@x.com", "password": "password2"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeEndpoint_RequiresSession(t *testing.T) {
	router, _, mailer, _ := setupRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := registerAndVerify(t, router, mailer, "a@x.com")
	rec = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "a@x.com")
}

func TestLogoutEndpoint_ClearsCookie(t *testing.T) {
	router, _, _, _ := setupRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestResetPasswordEndpoint(t *testing.T) {
	router, _, mailer, _ := setupRouter(t)
	registerAndVerify(t, router, mailer, "a@x.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/password/forgot",
		gin.H{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, mailer.resetURLs, 1)

	raw := mailer.resetURLs[0][len("https://bookworm.example.com/password/reset/"):]
	rec = doJSON(t, router, http.MethodPut, "/api/v1/auth/password/reset/"+raw,
		gin.H{"password": "password2", "confirmPassword": "password2"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sessionCookie(t, rec)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		gin.H{"email": "a@x.com", "password": "password2"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResetPasswordEndpoint_UnknownToken(t *testing.T) {
	router, _, _, _ := setupRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/auth/password/reset/deadbeef",
		gin.H{"password": "password2", "confirmPassword": "password2"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePasswordEndpoint(t *testing.T) {
	router, _, mailer, _ := setupRouter(t)
	cookie := registerAndVerify(t, router, mailer, "a@x.com")

	rec := doJSON(t, router, http.MethodPut, "/api/v1/auth/password/update",
		gin.H{"currentPassword": "password1", "newPassword": "password2", "confirmNewPassword": "password2"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		gin.H{"email": "a@x.com", "password": "password2"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMyBorrowedBooksEndpoint(t *testing.T) {
	router, _, mailer, borrows := setupRouter(t)
	cookie := registerAndVerify(t, router, mailer, "a@x.com")

	userID, err := utils.ParseSessionToken(cookie.Value, "test-secret")
	require.NoError(t, err)
	uid := uuid.MustParse(userID)

	now := time.Now()
	borrows.borrows = []models.Borrow{
		{ID: uuid.New(), UserID: uid, BookTitle: "Dune", BorrowedAt: now, DueDate: now.Add(7 * 24 * time.Hour)},
		{ID: uuid.New(), UserID: uid, BookTitle: "Hyperion", BorrowedAt: now, DueDate: now.Add(7 * 24 * time.Hour), Returned: true},
		{ID: uuid.New(), UserID: uuid.New(), BookTitle: "Other", BorrowedAt: now, DueDate: now},
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/borrow/my-borrowed-books", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Totals  struct {
			Borrowed int `json:"borrowed"`
			Returned int `json:"returned"`
		} `json:"totals"`
		BorrowedBooks []models.Borrow `json:"borrowedBooks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Totals.Borrowed)
	assert.Equal(t, 1, resp.Totals.Returned)
	assert.Len(t, resp.BorrowedBooks, 2)
}
