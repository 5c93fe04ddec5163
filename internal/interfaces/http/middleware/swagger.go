package middleware

import (
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/resale/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// SwaggerConfig controls access to the API documentation routes
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool     // run the auth middleware before serving docs
	AllowedIPs  []string // addresses or CIDRs; empty allows everyone
}

// SwaggerProtection guards /swagger. Disabled docs answer 404, clients outside
// AllowedIPs get 403, and with RequireAuth the auth middleware decides the rest.
// Unparseable allowlist entries are logged and skipped.
func SwaggerProtection(cfg SwaggerConfig, auth gin.HandlerFunc, logger *zap.Logger) gin.HandlerFunc {
	prefixes := parseAllowlist(cfg.AllowedIPs, logger)

	return func(c *gin.Context) {
		if !cfg.Enabled {
			abortWithError(c, dto.ErrCodeNotFound, "API documentation is not available")
			return
		}

		if len(cfg.AllowedIPs) > 0 && !ipAllowed(c.ClientIP(), prefixes) {
			abortWithError(c, dto.ErrCodeForbidden, "Access to API documentation is restricted")
			return
		}

		if cfg.RequireAuth && auth != nil {
			auth(c)
			if c.IsAborted() {
				return
			}
		}

		c.Next()
	}
}

func parseAllowlist(entries []string, logger *zap.Logger) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				logger.Warn("Ignoring invalid swagger CIDR", zap.String("entry", entry), zap.Error(err))
				continue
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			logger.Warn("Ignoring invalid swagger IP", zap.String("entry", entry), zap.Error(err))
			continue
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}
	return prefixes
}

func ipAllowed(clientIP string, prefixes []netip.Prefix) bool {
	addr, err := netip.ParseAddr(clientIP)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
