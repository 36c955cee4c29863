package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecofinds/internal/config"
	"github.com/ecofinds/internal/models"
	"github.com/ecofinds/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type apiEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type testServer struct {
	t         *testing.T
	db        *gorm.DB
	container *provider.Container
	engine    *gin.Engine
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.UserJWT.SecretKey = "router-test-secret"
	cfg.UserJWT.ExpireHours = 1
	cfg.Security.PasswordPolicy.MinLength = 6
	cfg.Catalog.DefaultPageSize = 12
	cfg.Catalog.MaxPageSize = 100
	cfg.Catalog.PlaceholderImage = "/placeholder-image.jpg"
	cfg.Metrics.Namespace = "ecofinds_test"
	return cfg
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := newTestConfig()
	container := provider.NewContainerWithDB(cfg, db)
	return &testServer{
		t:         t,
		db:        db,
		container: container,
		engine:    SetupRouter(cfg, container),
	}
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiEnvelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en-US")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env apiEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		s.t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return w, env
}

// register 注册并返回 token 与用户 ID
func (s *testServer) register(username string) (string, uint) {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		s.t.Fatalf("register %s status want 201 got %d body=%s", username, w.Code, w.Body.String())
	}
	var data struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	decodeData(s.t, env, &data)
	return data.Token, data.User.ID
}

// createProduct 以卖家身份发布商品并返回 ID
func (s *testServer) createProduct(token, title, price string) uint {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/v1/products", token, gin.H{
		"title":       title,
		"description": title + " in good shape",
		"category":    "Books",
		"price":       price,
		"tags":        []string{"Vintage", "vintage", " Paper "},
	})
	if w.Code != http.StatusCreated {
		s.t.Fatalf("create product status want 201 got %d body=%s", w.Code, w.Body.String())
	}
	var data struct {
		Product models.Product `json:"product"`
	}
	decodeData(s.t, env, &data)
	return data.Product.ID
}

func decodeData(t *testing.T, env apiEnvelope, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dest); err != nil {
		t.Fatalf("decode data failed: %v data=%s", err, string(env.Data))
	}
}
