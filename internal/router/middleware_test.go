package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/models"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func TestUserJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(UserJWTAuthMiddleware("", nil))
	r.GET("/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestUserJWTAuthMiddleware(t *testing.T) {
	srv := newTestServer(t)
	token, userID := srv.register("gatekeeper")
	authService := srv.container.UserAuthService

	r := gin.New()
	r.Use(UserJWTAuthMiddleware(srv.container.Config.UserJWT.SecretKey, authService))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint(userIDContextKey)})
	})

	call := func(header string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		return w
	}

	w := call("Bearer " + token)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		UserID uint `json:"user_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.UserID != userID {
		t.Fatalf("user_id want %d got %d", userID, resp.UserID)
	}

	for name, header := range map[string]string{
		"missing":   "",
		"no bearer": "Token " + token,
		"garbage":   "Bearer not-a-jwt",
	} {
		if w := call(header); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s header status want 401 got %d", name, w.Code)
		}
	}

	if err := authService.RevokeTokens(userID); err != nil {
		t.Fatalf("revoke tokens failed: %v", err)
	}
	if w := call("Bearer " + token); w.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token status want 401 got %d", w.Code)
	}
}

func TestUserJWTAuthMiddlewareRejectsDisabledUser(t *testing.T) {
	srv := newTestServer(t)
	token, userID := srv.register("sleeper")
	if err := srv.db.Model(&models.User{}).Where("id = ?", userID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	w, env := srv.do(http.MethodGet, "/api/v1/cart", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("disabled user status want 401 got %d", w.Code)
	}
	if env.Msg != "Account is disabled" {
		t.Fatalf("unexpected message: %s", env.Msg)
	}
}

func TestModeratorRBACMiddlewareWithoutUser(t *testing.T) {
	srv := newTestServer(t)

	r := gin.New()
	r.Use(ModeratorRBACMiddleware(srv.container.AuthzService))
	r.GET("/api/v1/moderation/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/moderation/products", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
}
