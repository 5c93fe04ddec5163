package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/resale/backend/internal/infrastructure/auth"
	"github.com/resale/backend/internal/infrastructure/logger"
	"github.com/resale/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTSubjectKey = "jwt_subject"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// PermissionExportSnapshot is required to write dashboard snapshots
const PermissionExportSnapshot = "analytics:export"

// TokenValidator turns a bearer token into claims
type TokenValidator interface {
	Validate(tokenString string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	Validator        TokenValidator
	SkipPaths        []string
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultJWTConfig skips health checks and the documentation routes
func DefaultJWTConfig(validator TokenValidator) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		Validator:        validator,
		SkipPaths:        []string{"/health", "/api/v1/health"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

// JWTAuthMiddleware requires a valid bearer token on every non-skipped path.
// Claims land in the gin context under JWTClaimsKey and the token subject is
// added to the request logger.
func JWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	skipped := func(path string) bool {
		for _, p := range cfg.SkipPaths {
			if path == p {
				return true
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		if skipped(c.Request.URL.Path) {
			c.Next()
			return
		}

		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			rejectToken(c, cfg.Logger, auth.ErrMissingToken)
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			rejectToken(c, cfg.Logger, auth.ErrInvalidToken)
			return
		}

		claims, err := cfg.Validator.Validate(strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix)))
		if err != nil {
			rejectToken(c, cfg.Logger, err)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTSubjectKey, claims.Subject)

		ctx := c.Request.Context()
		ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(zap.String("subject", claims.Subject)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func rejectToken(c *gin.Context, log *zap.Logger, err error) {
	if log != nil {
		log.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(RequestIDKey)),
		)
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		abortWithError(c, dto.ErrCodeTokenExpired, "Token has expired")
	case errors.Is(err, auth.ErrMissingToken):
		abortWithError(c, dto.ErrCodeUnauthorized, "Authentication required")
	case errors.Is(err, auth.ErrTokenNotYetValid):
		abortWithError(c, dto.ErrCodeTokenInvalid, "Token is not yet valid")
	default:
		abortWithError(c, dto.ErrCodeTokenInvalid, "Invalid token")
	}
}

// RequirePermission rejects requests whose claims lack perm. With auth
// disabled there are no claims and the check is skipped.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, present := c.Get(JWTClaimsKey); !present {
			c.Next()
			return
		}
		claims := GetJWTClaims(c)
		if claims == nil || !claims.HasPermission(perm) {
			abortWithError(c, dto.ErrCodeForbidden, "Missing permission "+perm)
			return
		}
		c.Next()
	}
}

// GetJWTClaims returns the validated claims, or nil
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetJWTSubject returns the token subject, empty when unauthenticated
func GetJWTSubject(c *gin.Context) string {
	return c.GetString(JWTSubjectKey)
}
