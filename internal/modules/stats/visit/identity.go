package visit

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// FallbackIdentity is used when no network address can be determined.
const FallbackIdentity = "127.0.0.1"

// ClientIdentity derives the visitor identity key from request network
// metadata. The precedence order matters for dedup correctness behind
// proxies and CDNs: the first forwarded-chain entry wins, then the real-IP
// header, then the CDN header, then the direct connection address.
func ClientIdentity(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(c.GetHeader("X-Real-IP")); realIP != "" {
		return realIP
	}
	if cfIP := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); cfIP != "" {
		return cfIP
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil && host != "" {
		return host
	}
	if addr := strings.TrimSpace(c.Request.RemoteAddr); addr != "" {
		return addr
	}
	return FallbackIdentity
}
