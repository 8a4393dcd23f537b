package proxy

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"share-platform/pkg/apperr"
	"share-platform/pkg/logger"
	"share-platform/pkg/middleware"
	"share-platform/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, userURL, contentURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users, err := NewUpstream("user", userURL, time.Second, logger.New())
	require.NoError(t, err)
	content, err := NewUpstream("content", contentURL, time.Second, logger.New())
	require.NoError(t, err)

	r := gin.New()
	r.Any("/user/*path", users.Handle)
	r.Any("/share/*path", content.Handle)
	return r
}

func echoServer(name string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Upstream", name)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"method": r.Method,
			"path":   r.URL.Path,
			"query":  r.URL.RawQuery,
			"token":  r.Header.Get("token"),
		})
	}))
}

func TestRoutesByPrefix(t *testing.T) {
	users := echoServer("user")
	defer users.Close()
	content := echoServer("content")
	defer content.Close()

	router := setupRouter(t, users.URL, content.URL)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/user/login", strings.NewReader(`{"phone":"1"}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user", w.Header().Get("X-Upstream"))
	assert.Contains(t, w.Body.String(), `"path":"/user/login"`)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/share/list?title=go&pageNo=2", nil)
	req.Header.Set("token", "no-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "content", w.Header().Get("X-Upstream"))

	var got map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "/share/list", got["path"])
	assert.Equal(t, "title=go&pageNo=2", got["query"])
	assert.Equal(t, "no-token", got["token"])
}

func TestUnknownPrefix(t *testing.T) {
	users := echoServer("user")
	defer users.Close()

	router := setupRouter(t, users.URL, users.URL)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/wallet/balance", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpstreamDown(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()

	users := echoServer("user")
	defer users.Close()

	router := setupRouter(t, users.URL, downURL)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/share/exchange", strings.NewReader(`{"shareId":1}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp response.CommonResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, apperr.CodeRemoteCall, resp.Code)
}

func TestUpstreamErrorsPassThrough(t *testing.T) {
	content := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"code":"INSUFFICIENT_BALANCE","message":"short","data":null}`))
	}))
	defer content.Close()

	router := setupRouter(t, content.URL, content.URL)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/share/exchange", strings.NewReader(`{"shareId":1}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INSUFFICIENT_BALANCE")
}

func TestNewUpstreamRejectsBadURL(t *testing.T) {
	_, err := NewUpstream("user", "localhost:8001", time.Second, logger.New())
	assert.Error(t, err)
}

func TestSingleCORSHeaderThroughGateway(t *testing.T) {
	content := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", r.Header.Get("Origin"))
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("X-Upstream", "content")
		_, _ = w.Write([]byte(`{"success":true,"code":"OK","data":[]}`))
	}))
	defer content.Close()

	gin.SetMode(gin.TestMode)
	upstream, err := NewUpstream("content", content.URL, time.Second, logger.New())
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.CORS())
	router.Any("/share/*path", upstream.Handle)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/share/list", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"http://localhost:3000"}, w.Header().Values("Access-Control-Allow-Origin"))
	assert.Equal(t, []string{"true"}, w.Header().Values("Access-Control-Allow-Credentials"))
	assert.Equal(t, "content", w.Header().Get("X-Upstream"))
}
