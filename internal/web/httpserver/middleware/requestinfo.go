package middleware

import (
	"context"
	"net/http"
)

type requestInfoKeyType int

const requestInfoKey requestInfoKeyType = iota

// RequestInfo holds lightweight request metadata exposed to templates, mainly
// so forms can redirect back to the page that posted them.
type RequestInfo struct {
	Path   string
	Query  string
	Method string
}

// ReturnTo is the current path with its query string, suitable for a form's
// redirect target.
func (i *RequestInfo) ReturnTo() string {
	if i.Query == "" {
		return i.Path
	}
	return i.Path + "?" + i.Query
}

// RequestInfoMiddleware annotates the context with the current request path.
func RequestInfoMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := &RequestInfo{
				Path:   r.URL.Path,
				Query:  r.URL.RawQuery,
				Method: r.Method,
			}
			ctx := context.WithValue(r.Context(), requestInfoKey, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestInfoFromContext returns the request metadata stored by RequestInfoMiddleware.
func RequestInfoFromContext(ctx context.Context) (*RequestInfo, bool) {
	info, ok := ctx.Value(requestInfoKey).(*RequestInfo)
	return info, ok && info != nil
}

// ReturnToFromContext returns the current page's return target or "/" when unavailable.
func ReturnToFromContext(ctx context.Context) string {
	if info, ok := RequestInfoFromContext(ctx); ok {
		return info.ReturnTo()
	}
	return "/"
}
