// Package network holds the HTTP client used for release checks.
package network

import (
	"net/http"
	"time"

	"github.com/melodeck/melodeck/constant"
)

// Client identifies itself as melodeck and gives up on slow hosts quickly,
// since nothing it fetches is needed for playback.
var Client = &http.Client{
	Timeout:   10 * time.Second,
	Transport: &userAgent{next: newTransport()},
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 5 * time.Second
	return t
}

type userAgent struct {
	next http.RoundTripper
}

func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", constant.UserAgent())
	return u.next.RoundTrip(req)
}
