package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/models"
)

func TestRegister(t *testing.T) {
	env := newEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/users/register", map[string]string{
		"name":      "Asha",
		"email":     "Asha@Example.COM",
		"password":  "secret123",
		"password2": "secret123",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, "asha@example.com") {
		t.Errorf("acknowledgment does not mention the email: %s", body)
	}

	var user models.User
	if err := env.db.Where("email = ?", "asha@example.com").First(&user).Error; err != nil {
		t.Fatalf("user not stored under lowercase email: %v", err)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	env := newEnv(t)
	env.createUser(t, "Asha", "asha@example.com", "secret123")

	w := env.doJSON(t, http.MethodPost, "/api/users/register", map[string]string{
		"name":      "Impostor",
		"email":     "ASHA@example.com",
		"password":  "another123",
		"password2": "another123",
	}, "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("user count = %d after rejected registration, want 1", count)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	env := newEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/users/register", map[string]string{
		"name":      "Asha",
		"email":     "asha@example.com",
		"password":  "abc",
		"password2": "abc",
	}, "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("user count = %d after rejected registration, want 0", count)
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	env := newEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/users/register", map[string]string{
		"name":      "Asha",
		"email":     "asha@example.com",
		"password":  "secret123",
		"password2": "secret124",
	}, "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	env := newEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/users/register", map[string]string{
		"email": "asha@example.com",
	}, "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestLogin(t *testing.T) {
	env := newEnv(t)
	user := env.createUser(t, "Asha", "asha@example.com", "secret123")

	w := env.doJSON(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "ASHA@example.com",
		"password": "secret123",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if uint(body["id"].(float64)) != user.ID {
		t.Errorf("id = %v, want %d", body["id"], user.ID)
	}
	if body["name"] != "Asha" {
		t.Errorf("name = %v, want Asha", body["name"])
	}

	claims, err := env.tokens.Verify(body["token"].(string))
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID || claims.Name != "Asha" {
		t.Errorf("token claims = {%d %s}, want {%d Asha}", claims.UserID, claims.Name, user.ID)
	}
}

func TestLoginDoesNotDistinguishFailures(t *testing.T) {
	env := newEnv(t)
	env.createUser(t, "Asha", "asha@example.com", "secret123")

	unknown := env.doJSON(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret123",
	}, "")
	wrongPassword := env.doJSON(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "asha@example.com",
		"password": "wrong-password",
	}, "")

	if unknown.Code != http.StatusUnprocessableEntity || wrongPassword.Code != http.StatusUnprocessableEntity {
		t.Fatalf("statuses = %d/%d, want 422/422", unknown.Code, wrongPassword.Code)
	}
	if decodeBody(t, unknown)["error"] != decodeBody(t, wrongPassword)["error"] {
		t.Error("unknown email and wrong password produce different messages")
	}
}
