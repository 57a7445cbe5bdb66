package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/akachour/wird/internal/api/dto"
)

func TestSignup(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.makeRequest(t, http.MethodPost, "/auth/signup", dto.SignupRequest{
		Username:        "ali",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.SignupResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Username != "ali" {
		t.Errorf("expected username 'ali', got %q", resp.Username)
	}

	// Signup does not log in; the account must work through /auth/login
	env.login(t, "ali", "secret123")
}

func TestSignupPasswordMismatch(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.makeRequest(t, http.MethodPost, "/auth/signup", dto.SignupRequest{
		Username:        "ali",
		Password:        "secret123",
		ConfirmPassword: "different",
	}, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	// No account was created
	w = env.makeRequest(t, http.MethodPost, "/auth/login", dto.LoginRequest{
		Username: "ali",
		Password: "secret123",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 after failed signup, got %d", w.Code)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.signup(t, "ali", "secret123")

	w := env.makeRequest(t, http.MethodPost, "/auth/signup", dto.SignupRequest{
		Username:        "ali",
		Password:        "other456",
		ConfirmPassword: "other456",
	}, "")

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseErrorResponse(t, w)
	if resp.Error != "Conflict" {
		t.Errorf("expected error 'Conflict', got %q", resp.Error)
	}

	// The original account is untouched
	env.login(t, "ali", "secret123")
}

func TestSignupMissingFields(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	tests := []struct {
		name string
		body dto.SignupRequest
	}{
		{"missing username", dto.SignupRequest{Password: "secret123", ConfirmPassword: "secret123"}},
		{"missing password", dto.SignupRequest{Username: "ali", ConfirmPassword: "secret123"}},
		{"missing confirmation", dto.SignupRequest{Username: "ali", Password: "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.makeRequest(t, http.MethodPost, "/auth/signup", tt.body, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestLoginDefaultAdmin(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.makeRequest(t, http.MethodPost, "/auth/login", dto.LoginRequest{
		Username: "admin",
		Password: "admin123",
	}, "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected a non-empty access token")
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("expected token type 'Bearer', got %q", resp.TokenType)
	}
	if !resp.IsAdmin {
		t.Error("expected the default admin account to be an administrator")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.signup(t, "ali", "secret123")

	tests := []struct {
		name string
		body dto.LoginRequest
	}{
		{"wrong password", dto.LoginRequest{Username: "ali", Password: "wrong"}},
		{"unknown user", dto.LoginRequest{Username: "nobody", Password: "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.makeRequest(t, http.MethodPost, "/auth/login", tt.body, "")
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", w.Code)
			}

			// The message must not reveal whether the username exists
			resp := parseErrorResponse(t, w)
			if resp.Message != "Invalid username or password" {
				t.Errorf("unexpected error message: %q", resp.Message)
			}
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.signup(t, "ali", "secret123")
	token := env.login(t, "ali", "secret123")

	w := env.makeRequest(t, http.MethodPost, "/auth/logout", nil, token)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", w.Code, w.Body.String())
	}

	// The token no longer passes the session gate
	w = env.makeRequest(t, http.MethodGet, "/entries", nil, token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 after logout, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/entries"},
		{http.MethodPost, "/entries"},
		{http.MethodPost, "/auth/logout"},
		{http.MethodGet, "/admin/entries"},
		{http.MethodGet, "/admin/reports/completion"},
	}

	for _, p := range paths {
		w := env.makeRequest(t, p.method, p.path, nil, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected status 401 without token, got %d", p.method, p.path, w.Code)
		}
	}
}

func TestChangePassword(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.signup(t, "ali", "secret123")
	token := env.login(t, "ali", "secret123")

	w := env.makeRequest(t, http.MethodPost, "/auth/password", dto.ChangePasswordRequest{
		CurrentPassword:    "secret123",
		NewPassword:        "newpass456",
		ConfirmNewPassword: "newpass456",
	}, token)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", w.Code, w.Body.String())
	}

	// Old password no longer works, new one does
	w = env.makeRequest(t, http.MethodPost, "/auth/login", dto.LoginRequest{
		Username: "ali",
		Password: "secret123",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 for the old password, got %d", w.Code)
	}
	env.login(t, "ali", "newpass456")
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.signup(t, "ali", "secret123")
	token := env.login(t, "ali", "secret123")

	w := env.makeRequest(t, http.MethodPost, "/auth/password", dto.ChangePasswordRequest{
		CurrentPassword:    "wrong",
		NewPassword:        "newpass456",
		ConfirmNewPassword: "newpass456",
	}, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}

	// The old password still works
	env.login(t, "ali", "secret123")
}

func TestChangePasswordConfirmationMismatch(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.signup(t, "ali", "secret123")
	token := env.login(t, "ali", "secret123")

	w := env.makeRequest(t, http.MethodPost, "/auth/password", dto.ChangePasswordRequest{
		CurrentPassword:    "secret123",
		NewPassword:        "newpass456",
		ConfirmNewPassword: "different",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	env.login(t, "ali", "secret123")
}
