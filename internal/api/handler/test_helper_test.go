package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akachour/wird/internal/api/dto"
	"github.com/akachour/wird/internal/api/middleware"
	"github.com/akachour/wird/internal/core/service"
	"github.com/akachour/wird/internal/infrastructure/sqlite"
	"github.com/gin-gonic/gin"
)

// testEnv holds all test dependencies
type testEnv struct {
	db       *sqlite.DB
	router   *gin.Engine
	sessions *service.SessionService
	accounts *service.AccountService
	ledger   *service.LedgerService
}

// setupTestEnv creates a test environment with an in-memory SQLite database
// and the full route surface behind real session middleware. The default
// admin account is seeded, so tests can log in as admin/admin123.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	entryRepo := sqlite.NewEntryRepository(db)

	accounts := service.NewAccountService(userRepo)
	sessions := service.NewSessionService(accounts, "test-secret-key", "HS256")
	ledger := service.NewLedgerService(entryRepo)

	if err := accounts.Bootstrap(context.Background()); err != nil {
		t.Fatalf("failed to bootstrap admin account: %v", err)
	}

	authHandler := NewAuthHandler(sessions, accounts)
	entryHandler := NewEntryHandler(ledger)
	reportHandler := NewReportHandler(ledger)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	sessionMiddleware := middleware.SessionMiddleware(sessions)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", sessionMiddleware, authHandler.Logout)
		auth.POST("/password", sessionMiddleware, authHandler.ChangePassword)
	}

	entries := router.Group("/entries", sessionMiddleware)
	{
		entries.POST("", entryHandler.CreateEntry)
		entries.GET("", entryHandler.ListMyEntries)
	}

	admin := router.Group("/admin", sessionMiddleware, middleware.AdminMiddleware())
	{
		admin.GET("/entries", entryHandler.ListAllEntries)
		admin.GET("/reports/completion", reportHandler.Completion)
		admin.GET("/reports/totals", reportHandler.Totals)
	}

	return &testEnv{
		db:       db,
		router:   router,
		sessions: sessions,
		accounts: accounts,
		ledger:   ledger,
	}
}

// cleanup closes the test database
func (env *testEnv) cleanup() {
	if env.db != nil {
		env.db.Close()
	}
}

// makeRequest performs a request with an optional JSON body and bearer token
func (env *testEnv) makeRequest(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// signup registers an account through the API and fails the test on error
func (env *testEnv) signup(t *testing.T, username, password string) {
	t.Helper()

	w := env.makeRequest(t, http.MethodPost, "/auth/signup", dto.SignupRequest{
		Username:        username,
		Password:        password,
		ConfirmPassword: password,
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("signup for %s failed with status %d: %s", username, w.Code, w.Body.String())
	}
}

// login logs in through the API and returns the access token
func (env *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()

	w := env.makeRequest(t, http.MethodPost, "/auth/login", dto.LoginRequest{
		Username: username,
		Password: password,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login for %s failed with status %d: %s", username, w.Code, w.Body.String())
	}

	var resp dto.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse login response: %v\nBody: %s", err, w.Body.String())
	}
	return resp.AccessToken
}

// submitEntry records a ledger entry through the API for the token's user
func (env *testEnv) submitEntry(t *testing.T, token string, req dto.CreateEntryRequest) dto.EntryResponse {
	t.Helper()

	w := env.makeRequest(t, http.MethodPost, "/entries", req, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("entry submission failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse entry response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// parseEntryListResponse parses the response body into EntryListResponse
func parseEntryListResponse(t *testing.T, w *httptest.ResponseRecorder) dto.EntryListResponse {
	t.Helper()

	var resp dto.EntryListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// parseErrorResponse parses the response body into ErrorResponse
func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}
