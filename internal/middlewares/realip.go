package middlewares

import (
	"net/http"
	"net/netip"
	"strings"
)

// RealIP replaces r.RemoteAddr with the client address carried in
// X-Forwarded-For or X-Real-IP, but only when the direct peer is one of the
// trusted proxies. X-Forwarded-For is read right to left and the first hop
// outside the trusted set is the client. Without trusted proxies the peer
// address is kept as is.
func RealIP(trusted []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(trusted) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if peer, ok := parseAddr(r.RemoteAddr); ok && isTrusted(peer, trusted) {
				if client, ok := forwardedClient(r.Header, trusted); ok {
					r.RemoteAddr = client.String()
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func forwardedClient(h http.Header, trusted []netip.Prefix) (netip.Addr, bool) {
	var hops []string
	for _, v := range h.Values("X-Forwarded-For") {
		hops = append(hops, strings.Split(v, ",")...)
	}

	var last netip.Addr
	for i := len(hops) - 1; i >= 0; i-- {
		addr, ok := parseAddr(strings.TrimSpace(hops[i]))
		if !ok {
			// a malformed hop ends the chain we can vouch for
			break
		}
		if !isTrusted(addr, trusted) {
			return addr, true
		}
		last = addr
	}
	if last.IsValid() {
		return last, true
	}

	if addr, ok := parseAddr(strings.TrimSpace(h.Get("X-Real-IP"))); ok {
		return addr, true
	}
	return netip.Addr{}, false
}

// parseAddr accepts "ip" and "ip:port" forms.
func parseAddr(s string) (netip.Addr, bool) {
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap(), true
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

func isTrusted(addr netip.Addr, trusted []netip.Prefix) bool {
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
