package utils

import (
	"net"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractIDFromParams retrieves a parameter value from the request context and removes file extensions like ".json".
func ExtractIDFromParams(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	rawID := params.ByName(paramName)
	return strings.Split(rawID, ".json")[0]
}

// ClientIP returns the host of the connection's remote address. Request
// headers are ignored.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ForwardedClientIP returns the first X-Forwarded-For entry, falling back to
// ClientIP. Only use it when every request passes through a proxy that
// overwrites the header.
func ForwardedClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return ClientIP(r)
}
