package handlers

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"depositshield_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(req *http.Request) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestBaseURL(t *testing.T) {
	h := NewBaseHandler(validator.New(), "https://api.example.com/")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "localhost:5000"
	assert.Equal(t, "http://localhost:5000", h.BaseURL(testContext(req)))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "internal:5000"
	req.Header.Set("X-Forwarded-Proto", "https, http")
	req.Header.Set("X-Forwarded-Host", "deposit.example.com, proxy")
	assert.Equal(t, "https://deposit.example.com", h.BaseURL(testContext(req)))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "secure.test"
	req.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://secure.test", h.BaseURL(testContext(req)))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = ""
	assert.Equal(t, "https://api.example.com", h.BaseURL(testContext(req)))
}

func TestParseParamUint(t *testing.T) {
	for _, tc := range []struct {
		value string
		want  uint
		ok    bool
	}{
		{"12", 12, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
	} {
		c := testContext(httptest.NewRequest(http.MethodGet, "/", nil))
		c.Params = gin.Params{{Key: "id", Value: tc.value}}
		got, err := ParseParamUint(c, "id")
		assert.Equal(t, tc.ok, err == nil, tc.value)
		assert.Equal(t, tc.want, got, tc.value)
	}
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"Kitchen", "Oven", "Floor"}, splitTags([]string{"Kitchen, Oven", " ", "Floor,"}))
	assert.Nil(t, splitTags(nil))
}
