package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddleware_CountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware("test"))
	router.GET("/share/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("test", "GET", "/share/:id", "200"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/share/12", nil)
	router.ServeHTTP(w, req)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("test", "GET", "/share/:id", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordExchange(t *testing.T) {
	before := testutil.ToFloat64(exchanges.WithLabelValues("unlocked"))
	RecordExchange("unlocked")
	assert.Equal(t, before+1, testutil.ToFloat64(exchanges.WithLabelValues("unlocked")))
}

func TestRecordAdjustment(t *testing.T) {
	before := testutil.ToFloat64(balanceAdjustments.WithLabelValues("BUY", "false"))
	RecordAdjustment("BUY", false)
	assert.Equal(t, before+1, testutil.ToFloat64(balanceAdjustments.WithLabelValues("BUY", "false")))
}

func TestHandler(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
