package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"share-platform/pkg/apperr"
	"share-platform/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, CommonResp) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	var resp CommonResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestOK(t *testing.T) {
	w, resp := serve(t, func(c *gin.Context) {
		OK(c, gin.H{"id": 1})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, apperr.CodeOK, resp.Code)
	assert.NotNil(t, resp.Data)
}

func TestFail_BusinessError(t *testing.T) {
	w, resp := serve(t, func(c *gin.Context) {
		Fail(c, logger.New(), fmt.Errorf("share 9: %w", apperr.ErrNotFound))
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, apperr.CodeNotFound, resp.Code)
	assert.Equal(t, "share 9: not found", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestFail_InternalErrorIsMasked(t *testing.T) {
	w, resp := serve(t, func(c *gin.Context) {
		Fail(c, logger.New(), errors.New("pq: relation \"shares\" does not exist"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperr.CodeInternal, resp.Code)
	assert.Equal(t, internalMessage, resp.Message)
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestBadRequest(t *testing.T) {
	w, resp := serve(t, func(c *gin.Context) {
		BadRequest(c, errors.New("phone is required"))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperr.CodeValidation, resp.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusFor(apperr.ErrAlreadyExists))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(apperr.ErrInvalidCredential))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(apperr.ErrTokenExpired))
	assert.Equal(t, http.StatusBadRequest, StatusFor(apperr.ErrInsufficientBalance))
	assert.Equal(t, http.StatusBadGateway, StatusFor(apperr.ErrRemoteCall))
}
