package handlers

import (
	"net/http"
	"strings"

	"photo-manifest/internal/manifest"
)

// BaseURLResolver decides the URL prefix for manifest links: a configured
// public URL wins, otherwise it is derived from the request.
type BaseURLResolver struct {
	PublicBaseURL     string
	TrustProxyHeaders bool
}

func (b BaseURLResolver) Resolve(r *http.Request) string {
	if strings.TrimSpace(b.PublicBaseURL) != "" {
		return manifest.NormalizeBaseURL(b.PublicBaseURL)
	}
	return manifest.BaseURL(b.request(r))
}

func (b BaseURLResolver) request(r *http.Request) manifest.Request {
	req := manifest.Request{
		Secure:     r.TLS != nil,
		Host:       r.Host,
		ScriptPath: r.URL.Path,
	}
	if !b.TrustProxyHeaders {
		return req
	}
	if proto := firstHeaderValue(r, "X-Forwarded-Proto"); proto != "" {
		req.Secure = strings.EqualFold(proto, "https")
	}
	if host := firstHeaderValue(r, "X-Forwarded-Host"); host != "" {
		req.Host = host
	}
	return req
}

func firstHeaderValue(r *http.Request, name string) string {
	v := r.Header.Get(name)
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
