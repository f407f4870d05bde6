package pkg

import (
	"net"
	"net/http"
	"strings"
)

// ReadUserIP returns the client address of r without the port, preferring
// the proxy headers set by nginx over the socket peer.
func ReadUserIP(r *http.Request) string {
	ipAddr := r.Header.Get("X-Real-Ip")
	if ipAddr == "" {
		// X-Forwarded-For may carry a chain: client, proxy1, proxy2
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			ipAddr = strings.TrimSpace(strings.Split(fwd, ",")[0])
		}
	}
	if ipAddr == "" {
		ipAddr = r.RemoteAddr
	}

	if host, _, err := net.SplitHostPort(ipAddr); err == nil {
		ipAddr = host
	}
	if net.ParseIP(ipAddr) == nil {
		return ""
	}
	return ipAddr
}
