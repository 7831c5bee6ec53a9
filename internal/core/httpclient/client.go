// Package httpclient configures the HTTP client used to call the portal.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

// NewOutbound creates the outbound client. The portal serves whole
// boundary layers in one response, so keep-alives and a generous pool
// matter more than aggressive timeouts; timeout bounds the full round
// trip including body read.
func NewOutbound(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          64,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
