package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{"email":" Test@Example.com "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("email")(c)
	if key != "test@example.com|1.2.3.4" {
		t.Fatalf("key want test@example.com|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Test@Example.com") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestKeyByIPAndLoginIdentifier(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "identifier", body: `{"identifier":"Alice","password":"x"}`, want: "alice|1.2.3.4"},
		{name: "username", body: `{"username":" Bob ","password":"x"}`, want: "bob|1.2.3.4"},
		{name: "email", body: `{"email":"Carol@Example.com"}`, want: "carol@example.com|1.2.3.4"},
		{name: "identifier wins", body: `{"identifier":"dave","email":"other@example.com"}`, want: "dave|1.2.3.4"},
		{name: "blank identifier falls through", body: `{"identifier":"  ","username":"erin"}`, want: "erin|1.2.3.4"},
		{name: "no account", body: `{"password":"x"}`, want: "1.2.3.4"},
		{name: "not json", body: `identifier=frank`, want: "1.2.3.4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tc.body))
			c.Request.Header.Set("Content-Type", "application/json")
			c.Request.RemoteAddr = "1.2.3.4:5678"

			if key := KeyByIPAndLoginIdentifier(c); key != tc.want {
				t.Fatalf("key want %s got %s", tc.want, key)
			}
			body, _ := io.ReadAll(c.Request.Body)
			if string(body) != tc.body {
				t.Fatalf("request body should be restored, got %s", body)
			}
		})
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestRateLimitMiddlewareLocalFallbackBlocks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{Prefix: "login", WindowSeconds: 60, MaxRequests: 2, MessageKey: "error.login_too_many"}, KeyByIP))
	r.POST("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login?lang=en", nil)
		req.RemoteAddr = "10.0.0.1:1000"
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status want 200 got %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login?lang=en", nil)
	req.RemoteAddr = "10.0.0.1:1000"
	r.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status want 429 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "60 seconds") {
		t.Fatalf("expected wait seconds in message, got %s", w.Body.String())
	}

	other := httptest.NewRecorder()
	otherReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	otherReq.RemoteAddr = "10.0.0.2:1000"
	r.ServeHTTP(other, otherReq)
	if other.Code != http.StatusOK {
		t.Fatalf("other client should not be limited, got %d", other.Code)
	}
}

func TestLocalLimiterRefillsAfterWindow(t *testing.T) {
	limiter := newLocalLimiter(RateLimitRule{WindowSeconds: 10, MaxRequests: 1})
	now := time.Now()
	if !limiter.allow("k", now) {
		t.Fatalf("first request should pass")
	}
	if limiter.allow("k", now.Add(time.Second)) {
		t.Fatalf("second request inside window should be limited")
	}
	if !limiter.allow("k", now.Add(11*time.Second)) {
		t.Fatalf("request after window should pass")
	}
}

func TestLocalLimiterEvictsIdleKeys(t *testing.T) {
	limiter := newLocalLimiter(RateLimitRule{WindowSeconds: 1, MaxRequests: 1})
	now := time.Now()
	limiter.allow("stale", now.Add(-time.Minute))
	limiter.evictIdle(now)
	if _, ok := limiter.limiters["stale"]; ok {
		t.Fatalf("idle key should be evicted")
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "uint8", input: uint8(12), want: 12, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
