package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorUsesMatchingHTTPStatus(t *testing.T) {
	c, w := newContext()
	c.Set("request_id", "req-1")
	Error(c, CodeNotFound, "Product not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(CodeNotFound), body["status_code"])
	assert.Equal(t, "Product not found", body["msg"])
	assert.Equal(t, "req-1", body["data"].(map[string]interface{})["request_id"])
}

func TestErrorWithDataKeepsPayload(t *testing.T) {
	c, w := newContext()
	ErrorWithData(c, CodeBadRequest, "Cart is empty", gin.H{"unavailableItems": []int{1}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Len(t, data["unavailableItems"], 1)
}

func TestCreatedAndSuccess(t *testing.T) {
	c, w := newContext()
	Created(c, "created", gin.H{"id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(CodeOK), decode(t, w)["status_code"])

	c, w = newContext()
	Success(c, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", decode(t, w)["msg"])
}

func TestNonErrorCodeFallsBackTo500(t *testing.T) {
	c, w := newContext()
	Error(c, 12345, "odd")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
