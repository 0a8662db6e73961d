package netutil

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the originating IP from common proxy headers, falling
// back to the connection address.
func ClientIP(r *http.Request) net.IP {
	if r == nil {
		return nil
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		first := strings.TrimSpace(strings.SplitN(xf, ",", 2)[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip
		}
	}
	if xr := strings.TrimSpace(r.Header.Get("X-Real-IP")); xr != "" {
		if ip := net.ParseIP(xr); ip != nil {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		host = strings.TrimSpace(r.RemoteAddr)
	}
	return net.ParseIP(host)
}

// ClassifySource buckets an address for log fields. Docker's default bridge
// range is split out from other private space because chat UIs commonly call
// the proxy from a sibling container.
func ClassifySource(ip net.IP) string {
	switch {
	case ip == nil:
		return "unknown"
	case ip.IsLoopback():
		return "loopback"
	case isDockerBridge(ip):
		return "docker_bridge"
	case ip.IsPrivate():
		return "private"
	default:
		return "public"
	}
}

func isDockerBridge(ip net.IP) bool {
	ip4 := ip.To4()
	return ip4 != nil && ip4[0] == 172 && ip4[1] == 17
}
