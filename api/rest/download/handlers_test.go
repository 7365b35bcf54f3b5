package download

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(allowedHosts []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/download", Handler(Config{AllowedHosts: allowedHosts}))

	return router
}

func doDownload(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/download", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func sourceHost(t *testing.T, server *httptest.Server) string {
	t.Helper()

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)

	return parsed.Hostname()
}

func TestHandler_ProxiesAllowedImage(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer source.Close()

	router := newRouter([]string{sourceHost(t, source)})
	w := doDownload(t, router, `{"imageUrl":"`+source.URL+`/x.jpg","filename":"ghibli-art.jpg"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg-bytes", w.Body.String())
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="ghibli-art.jpg"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}

func TestHandler_RejectsUnknownSource(t *testing.T) {
	router := newRouter([]string{"images.example.com"})
	w := doDownload(t, router, `{"imageUrl":"https://evil.test/x.jpg","filename":"x.jpg"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_source")
}

func TestHandler_RejectsBadFilename(t *testing.T) {
	router := newRouter([]string{"images.example.com"})
	w := doDownload(t, router, `{"imageUrl":"https://images.example.com/x.jpg","filename":"../etc/passwd"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestHandler_RejectsNonImageContentType(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer source.Close()

	router := newRouter([]string{sourceHost(t, source)})
	w := doDownload(t, router, `{"imageUrl":"`+source.URL+`/x.jpg","filename":"x.jpg"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_file_type")
}

func TestHandler_RejectsOversizedContentLength(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", "104857600") // 100MB
		_, _ = w.Write(make([]byte, 1024))
	}))
	defer source.Close()

	router := newRouter([]string{sourceHost(t, source)})
	w := doDownload(t, router, `{"imageUrl":"`+source.URL+`/x.png","filename":"x.png"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "image_too_large")
}

func TestHandler_MapsUpstreamFailure(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer source.Close()

	router := newRouter([]string{sourceHost(t, source)})
	w := doDownload(t, router, `{"imageUrl":"`+source.URL+`/missing.jpg","filename":"x.jpg"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "fetch_failed")
}
