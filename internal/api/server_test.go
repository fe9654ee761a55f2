package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/vitrine/internal/config"
	"github.com/yizeng/gab/gin/vitrine/internal/render"
	"github.com/yizeng/gab/gin/vitrine/internal/repository/dao"
)

func newTestServer(t *testing.T, status int, body string) (*Server, *int32) {
	t.Helper()

	var hits int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(backend.Close)

	conf := testConfig(backend.URL + "/produtos")

	return NewServer(conf, dao.NewProductDAO(backend.Client(), conf.Backend.ProductsURL)), &hits
}

func testConfig(productsURL string) *config.AppConfig {
	return &config.AppConfig{
		API: &config.APIConfig{
			Port:               "3000",
			Environment:        config.EnvDevelopment,
			BaseURL:            "localhost:3000",
			AllowedCORSDomains: []string{"http://localhost:3000"},
		},
		Gin:     &config.GinConfig{Mode: "test"},
		Backend: &config.BackendConfig{ProductsURL: productsURL},
	}
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Router.ServeHTTP(w, req)

	return w
}

func TestListPage(t *testing.T) {
	s, hits := newTestServer(t, http.StatusOK, `[
		{"id": 1, "nome": "Monitor", "valor": 3510.99, "desconto": 5.00},
		{"id": 2, "nome": "Bala", "valor": 0.5, "desconto": 0.25}
	]`)

	w := get(s, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `<li data-key="1">Monitor (R$ 3505.99)</li>`)
	assert.Contains(t, body, `<li data-key="2">Bala (R$ 0.25)</li>`)
	assert.Less(t, strings.Index(body, "Monitor"), strings.Index(body, "Bala"))
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestListPage_Empty(t *testing.T) {
	s, _ := newTestServer(t, http.StatusOK, `[]`)

	w := get(s, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<ul>")
	assert.NotContains(t, w.Body.String(), "<li")
	assert.NotContains(t, w.Body.String(), `role="alert"`)
}

func TestListPage_BackendFailure(t *testing.T) {
	s, hits := newTestServer(t, http.StatusInternalServerError, `boom`)

	w := get(s, "/")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `role="alert"`)
	assert.NotContains(t, w.Body.String(), "<li")
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestListProducts(t *testing.T) {
	s, _ := newTestServer(t, http.StatusOK, `[
		{"id": 1, "nome": "Monitor", "valor": 3510.99, "desconto": 5.00},
		{"id": 1, "nome": "Monitor", "valor": 3510.99, "desconto": 5.00}
	]`)

	w := get(s, "/api/v1/produtos")
	require.Equal(t, http.StatusOK, w.Code)

	var lines []render.Line
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	assert.Equal(t, []render.Line{
		{Key: "1", Text: "Monitor (R$ 3505.99)"},
		{Key: "1", Text: "Monitor (R$ 3505.99)"},
	}, lines)
}

func TestListProducts_Empty(t *testing.T) {
	s, _ := newTestServer(t, http.StatusOK, `[]`)

	w := get(s, "/api/v1/produtos")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListProducts_MalformedBackend(t *testing.T) {
	s, _ := newTestServer(t, http.StatusOK, `not json`)

	w := get(s, "/api/v1/produtos")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"status": "Bad Gateway", "error": "products backend could not be read"}`, w.Body.String())
}

func TestPing(t *testing.T) {
	s, hits := newTestServer(t, http.StatusOK, `[]`)

	w := get(s, "/ping")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.EqualValues(t, 0, atomic.LoadInt32(hits))
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t, http.StatusOK, `[]`)

	w := get(s, "/ping")

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSwaggerDoc(t *testing.T) {
	s, _ := newTestServer(t, http.StatusOK, `[]`)

	w := get(s, "/swagger/doc.json")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/produtos"`)
	assert.Contains(t, w.Body.String(), `"basePath": "/api/v1"`)
}

func TestListPage_BadEndpoint(t *testing.T) {
	s := NewServer(testConfig("://no-scheme"), dao.NewProductDAO(nil, "://no-scheme"))

	w := get(s, "/")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `role="alert"`)
}

func TestListProducts_BadEndpoint(t *testing.T) {
	s := NewServer(testConfig("://no-scheme"), dao.NewProductDAO(nil, "://no-scheme"))

	w := get(s, "/api/v1/produtos")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status": "Internal Server Error"}`, w.Body.String())
}

func preflight(s *Server, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/produtos", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	s.Router.ServeHTTP(w, req)

	return w
}

func TestCORS_Preflight(t *testing.T) {
	s, hits := newTestServer(t, http.StatusOK, `[]`)

	w := preflight(s, "http://localhost:3000")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
	assert.EqualValues(t, 0, atomic.LoadInt32(hits))
}

func TestCORS_PreflightUnknownOrigin(t *testing.T) {
	s, _ := newTestServer(t, http.StatusOK, `[]`)

	w := preflight(s, "http://evil.example")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AllowAllWhenUnconfigured(t *testing.T) {
	conf := testConfig("http://localhost:5000/produtos")
	conf.API.AllowedCORSDomains = nil
	s := NewServer(conf, dao.NewProductDAO(nil, conf.Backend.ProductsURL))

	w := preflight(s, "http://anywhere.example")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestListPage_TrailingDataFromBackend(t *testing.T) {
	s, _ := newTestServer(t, http.StatusOK, `[] trailing garbage`)

	w := get(s, "/")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `role="alert"`)
	assert.NotContains(t, w.Body.String(), "<ul>")
}
