// Package proxy forwards gateway traffic to the backend services.
package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"share-platform/pkg/apperr"
	"share-platform/pkg/logger"
	"share-platform/pkg/response"

	"github.com/gin-gonic/gin"
)

// Upstream is one backend service behind a path prefix. Paths, queries and
// headers are forwarded unchanged.
type Upstream struct {
	name   string
	target *url.URL
	proxy  *httputil.ReverseProxy
	logger *logger.Logger
}

func NewUpstream(name, rawURL string, timeout time.Duration, logger *logger.Logger) (*Upstream, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse %s upstream url: %w", name, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("%s upstream url %q needs a scheme and host", name, rawURL)
	}

	u := &Upstream{
		name:   name,
		target: target,
		logger: logger,
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(request *http.Request) {
		director(request)
		request.Host = target.Host
	}
	proxy.Transport = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ResponseHeaderTimeout: timeout,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConnsPerHost:   32,
	}
	proxy.ModifyResponse = stripCORS
	proxy.ErrorHandler = u.writeError
	u.proxy = proxy

	return u, nil
}

// Handle forwards the request as is.
func (u *Upstream) Handle(c *gin.Context) {
	u.proxy.ServeHTTP(c.Writer, c.Request)
}

// stripCORS drops CORS headers set by a backend so the gateway's own are the
// only ones the browser sees.
func stripCORS(resp *http.Response) error {
	for name := range resp.Header {
		if strings.HasPrefix(name, "Access-Control-") {
			resp.Header.Del(name)
		}
	}
	return nil
}

func (u *Upstream) writeError(w http.ResponseWriter, r *http.Request, err error) {
	u.logger.Error("%s upstream %s %s failed: %v", u.name, r.Method, r.URL.Path, err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	_ = json.NewEncoder(w).Encode(response.CommonResp{
		Success: false,
		Code:    apperr.CodeRemoteCall,
		Message: fmt.Sprintf("%s service unavailable", u.name),
	})
}
